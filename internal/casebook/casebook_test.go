package casebook

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/source"
)

const sample = "# Cases\n\n" +
	"Prose is ignored.\n\n" +
	"## Test: sum\n\n" +
	"```minic\nprogram { int x; x = 1; }\n```\n\n" +
	"```ir-contains\nstore i32 1\n\n```\n\n" +
	"## Test: bad\n\n" +
	"```minic\nprogram { bool b; double d;\nd = b; }\n```\n\n" +
	"```compile-error\nSEM3002 2\n```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract([]byte(sample))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)
	be.Equal(t, cases[0].Name, "sum")
	be.Equal(t, cases[0].Source, "program { int x; x = 1; }")
	be.Equal(t, cases[0].Assertions[0].Kind, FenceIRContains)

	want, err := cases[1].ExpectedErrors()
	be.Err(t, err, nil)
	be.Equal(t, want, []Expected{{Code: diag.SemaIllegalConversion, Line: 2}})
}

func TestExtractRejectsMalformedCases(t *testing.T) {
	for _, doc := range []string{
		"```minic\nprogram {}\n```\n",
		"## Test: empty\n\n```ir-contains\nx\n```\n",
		"## Test: only source\n\n```minic\nprogram {}\n```\n",
		"## Test: odd\n\n```minic\nprogram {}\n```\n\n```wat\nx\n```\n",
	} {
		_, err := Extract([]byte(doc))
		be.True(t, err != nil)
	}
}

func TestVerify(t *testing.T) {
	cases, err := Extract([]byte(sample))
	be.Err(t, err, nil)

	be.Equal(t, len(cases[0].Verify("  store i32 1, ptr %scratch.i32", nil)), 0)
	be.Equal(t, len(cases[0].Verify("", nil)), 1)

	hit := diag.NewError(diag.SemaIllegalConversion, source.AtLine(0, 2), "cannot convert bool to double")
	be.Equal(t, len(cases[1].Verify("", []diag.Diagnostic{hit})), 0)
	miss := diag.NewError(diag.SemaIllegalConversion, source.AtLine(0, 3), "cannot convert bool to double")
	be.Equal(t, len(cases[1].Verify("", []diag.Diagnostic{miss})), 1)
	be.Equal(t, len(cases[1].Verify("", nil)), 1)
}
