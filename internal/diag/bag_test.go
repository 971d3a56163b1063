package diag

import (
	"testing"

	"github.com/maciek-pioro/compiler/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, SemaInfo, source.AtLine(0, 1), "w")) {
		t.Fatalf("first add must succeed")
	}
	if bag.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	bag.Add(NewError(SemaUndeclaredIdentifier, source.AtLine(0, 2), "e"))
	if bag.Add(NewError(SemaUndeclaredIdentifier, source.AtLine(0, 3), "dropped")) {
		t.Fatalf("limit must reject third diagnostic")
	}
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Fatalf("unexpected bag state: errors=%v len=%d", bag.HasErrors(), bag.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	r.Report(SemaNonBooleanCondition, SevError, source.AtLine(0, 5), "b", nil)
	r.Report(SemaUndeclaredIdentifier, SevError, source.AtLine(0, 2), "a", nil)
	r.Report(SemaUndeclaredIdentifier, SevError, source.AtLine(0, 2), "a", nil)
	bag.Dedup()
	bag.Sort()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Line() != 2 || items[1].Line() != 5 {
		t.Fatalf("unexpected order: %d, %d", items[0].Line(), items[1].Line())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SemaDuplicateDeclaration, source.AtLine(0, 4), "x redeclared").
		WithNote(source.AtLine(0, 2), "first declared here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || d.Notes[0].Pos.Line != 2 {
		t.Fatalf("note not attached: %+v", d.Notes)
	}
}

func TestCodeIDRoundTrip(t *testing.T) {
	if got := SemaIllegalConversion.ID(); got != "SEM3002" {
		t.Fatalf("unexpected id %q", got)
	}
	c, ok := ParseID("SEM3003")
	if !ok || c != SemaDuplicateDeclaration {
		t.Fatalf("ParseID failed: %v %v", c, ok)
	}
	if _, ok := ParseID("SEM9999"); ok {
		t.Fatalf("unknown id must not parse")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("testdata/sample.mini", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(SemaNonBooleanCondition, source.AtLine(id, 2), "condition must be bool"),
		NewError(SynExpectSemicolon, source.Pos{File: id, Line: 1, Col: 2}, "expected ';'\nafter statement").
			WithNote(source.AtLine(id, 1), "statement starts here"),
	}

	want := "note SYN2002 testdata/sample.mini:1 statement starts here\n" +
		"error SYN2002 testdata/sample.mini:1:2 expected ';' after statement\n" +
		"error SEM3009 testdata/sample.mini:2 condition must be bool"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
