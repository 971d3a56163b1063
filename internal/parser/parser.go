// Package parser builds an ast.Tree from MiNI source using only the tree
// construction API.
package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/lexer"
	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/token"
)

type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 means unlimited
}

// Result of parsing one file. Tree is nil when nothing could be built;
// OK is false as soon as any lexical or syntax error was reported.
type Result struct {
	Tree *ast.Tree
	OK   bool
}

// Parser: состояние разбора одного файла
type Parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	tree   *ast.Tree
	opts   Options
	errors uint
}

// ParseFile lexes and parses file.
func ParseFile(file *source.File, opts Options) Result {
	counter := &countingReporter{next: opts.Reporter}
	lx := lexer.New(file, lexer.Options{Reporter: counter})
	toks := lx.All()

	// a failed conversion only loses the capacity hint
	nodes, _ := safecast.Conv[uint](2 * len(toks)) //nolint:errcheck
	vars, _ := safecast.Conv[uint](len(toks) / 4)  //nolint:errcheck
	p := &Parser{
		file:   file,
		toks:   toks,
		tree:   ast.NewTree(file.ID, ast.Hints{Nodes: nodes, Vars: vars}),
		opts:   opts,
		errors: counter.errors,
	}
	root, ok := p.parseProgram()
	if err := p.tree.Err(); err != nil {
		p.report(diag.SynUnexpectedToken, p.peek(), fmt.Sprintf("malformed tree: %v", err))
	}
	return Result{
		Tree: p.tree,
		OK:   ok && root.IsValid() && p.errors == 0,
	}
}

// countingReporter forwards diagnostics and counts lexical errors.
type countingReporter struct {
	next   diag.Reporter
	errors uint
}

func (c *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Pos, msg string, notes []diag.Note) {
	if sev >= diag.SevError {
		c.errors++
	}
	if c.next != nil {
		c.next.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance съедает текущий токен; на EOF стоит на месте
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) line(tok token.Token) uint32 {
	return p.file.Position(tok.Span.Start).Line
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) report(code diag.Code, at token.Token, msg string) {
	p.errors++
	if p.opts.Reporter == nil || (p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors) {
		return
	}
	diag.ReportError(p.opts.Reporter, code, p.file.Position(at.Span.Start), msg).Emit()
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", tok.Text)
}

// expect съедает токен нужного вида или репортит ошибку
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, p.peek(), fmt.Sprintf("expected %s, got %s", what, describe(p.peek())))
	return p.peek(), false
}

// resync skips to the end of the broken statement: past the next ';', or
// up to a '}' or EOF.
func (p *Parser) resync() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() (ast.NodeID, bool) {
	kw, ok := p.expect(token.KwProgram, diag.SynExpectProgram, "'program'")
	if !ok {
		return ast.NoNodeID, false
	}
	decls, body, ok := p.parseScope()
	if !ok {
		return ast.NoNodeID, false
	}
	if !p.at(token.EOF) {
		p.report(diag.SynTrailingInput, p.peek(), fmt.Sprintf("unexpected %s after the program block", describe(p.peek())))
	}
	return p.tree.NewProgram(decls, body, p.line(kw)), true
}
