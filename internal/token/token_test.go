package token_test

import (
	"testing"

	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"program": token.KwProgram,
		"while":   token.KwWhile,
		"hex":     token.KwHex,
		"double":  token.KwDouble,
		"true":    token.KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	// регистр важен
	for _, s := range []string{"Program", "WHILE", "string", "x"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true", s)
		}
	}
}

func TestClassification(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.DoubleLit, token.StringLit, token.KwTrue} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Assign, token.Tilde, token.Comma, token.Semicolon} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	if tok(token.Ident).IsKeyword() || !tok(token.KwHex).IsKeyword() {
		t.Fatalf("keyword classification is off")
	}
	if !token.KwDouble.IsTypeKeyword() || token.KwHex.IsTypeKeyword() {
		t.Fatalf("type keyword classification is off")
	}
}

func TestKindString(t *testing.T) {
	if got := token.Semicolon.String(); got != "';'" {
		t.Fatalf("unexpected %q", got)
	}
	if got := token.Kind(250).String(); got != "unknown" {
		t.Fatalf("unexpected %q", got)
	}
}
