package fuzztests

import (
	"path/filepath"
	"testing"

	"github.com/maciek-pioro/compiler/internal/casebook"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
)

var languageSeeds = []string{
	"",
	"program {}",
	"program { int x; x = 3 + 2; write x; }",
	"program { if (1 == 1) write 1; else write 0; }",
	"program { int i; while (i < 10) { i = i + 1; } }",
	"program { bool b; b = true && !false || 1 > 2; write b; }",
	"program { double d; read d; write (int) d; write 0x1F hex; }",
	"program { int a; { double a; a = 1.5; } write a | 3 & ~1; }",
	`program { write "tab\tquote\"\n"; return; }`,
}

// addCorpusSeeds feeds the casebook programs and a few hand-written ones.
func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	cases, err := casebook.LoadDir(filepath.Join("..", "driver", "testdata"))
	if err != nil {
		return
	}
	for _, c := range cases {
		f.Add(clampSeed([]byte(c.Source)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
