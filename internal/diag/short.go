package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maciek-pioro/compiler/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "<severity> <code> <path>:<line>[:<col>] <message>", sorted deterministically.
// Notes follow as "note" rows when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, shortDiagnostic{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Path:     pathOf(fs, d.Primary.File),
			Line:     d.Primary.Line,
			Column:   d.Primary.Col,
			Message:  oneLine(d.Message),
		})
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     pathOf(fs, n.Pos.File),
				Line:     n.Pos.Line,
				Column:   n.Pos.Col,
				Message:  oneLine(n.Msg),
			})
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	var b strings.Builder
	for i, d := range rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		loc := fmt.Sprintf("%s:%d", d.Path, d.Line)
		if d.Column != 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Column)
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code, loc, d.Message)
	}
	return b.String()
}

func pathOf(fs *source.FileSet, id source.FileID) string {
	if fs == nil {
		return "<input>"
	}
	if f := fs.Get(id); f != nil {
		return f.Path
	}
	return "<input>"
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
