package fuzztests

import (
	"testing"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/lexer"
	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.mini", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		toks := lx.All()
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		var prev uint32
		for _, tok := range toks {
			if tok.Span.Start < prev {
				t.Fatalf("token %q starts at %d before previous end %d", tok.Text, tok.Span.Start, prev)
			}
			prev = tok.Span.End
		}
	})
}
