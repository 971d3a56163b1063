package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, code *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		code:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints the bag in a human-readable layout:
//
//	path:line:col: error SEM3002: message
//	   3 | x = true;
//	     |     ^
//	  = note: path:2: previous declaration
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s: %s\n",
		location(fs, d.Primary, opts.PathMode),
		pal.severity(d.Severity).Sprint(d.Severity.Label()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(&b, fs, d.Primary, opts.Context, pal)
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "  %s %s: %s\n", pal.gutter.Sprint("="), pal.note.Sprint("note"), n.Msg)
			fmt.Fprintf(&b, "    at %s\n", location(fs, n.Pos, opts.PathMode))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func location(fs *source.FileSet, pos source.Pos, mode PathMode) string {
	path := formatPath(fs, pos.File, mode)
	if pos.Col == 0 {
		return fmt.Sprintf("%s:%d", path, pos.Line)
	}
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

// writeSnippet prints the reported line with up to context lines above it.
// A caret is drawn only when the column is known.
func writeSnippet(b *strings.Builder, fs *source.FileSet, pos source.Pos, context int, pal palette) {
	if fs == nil || !pos.IsValid() {
		return
	}
	f := fs.Get(pos.File)
	if f == nil {
		return
	}
	first := int64(pos.Line) - int64(max(context, 0))
	if first < 1 {
		first = 1
	}
	width := len(fmt.Sprint(pos.Line))
	for ln := uint32(first); ln <= pos.Line; ln++ { // #nosec G115 -- first is in [1, pos.Line]
		text := strings.TrimRight(f.GetLine(ln), "\n")
		fmt.Fprintf(b, " %*d %s %s\n", width, ln, pal.gutter.Sprint("|"), expandTabs(text))
	}
	if pos.Col == 0 {
		return
	}
	line := expandTabs(strings.TrimRight(f.GetLine(pos.Line), "\n"))
	raw := f.GetLine(pos.Line)
	prefix := raw
	if int(pos.Col-1) <= len(raw) {
		prefix = raw[:pos.Col-1]
	}
	col := runewidth.StringWidth(expandTabs(prefix))
	col = min(col, runewidth.StringWidth(line))
	fmt.Fprintf(b, " %*s %s %s%s\n", width, "", pal.gutter.Sprint("|"), strings.Repeat(" ", col), pal.caret.Sprint("^"))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
