package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/diagfmt"
	"github.com/maciek-pioro/compiler/internal/source"
)

type diagOutput struct {
	format   string // pretty | json | short
	notes    bool
	fullPath bool
	color    bool
}

func bagOf(diags []diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(len(diags) + 1)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag
}

func printDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, o diagOutput) error {
	mode := diagfmt.PathModeAuto
	if o.fullPath {
		mode = diagfmt.PathModeAbsolute
	}
	switch o.format {
	case "", "pretty":
		if len(diags) == 0 {
			return nil
		}
		return diagfmt.Pretty(w, bagOf(diags), fs, diagfmt.PrettyOpts{
			Color:     o.color,
			Context:   1,
			PathMode:  mode,
			ShowNotes: o.notes,
		})
	case "json":
		return diagfmt.JSON(w, bagOf(diags), fs, diagfmt.JSONOpts{PathMode: mode, IncludeNotes: o.notes})
	case "short":
		if len(diags) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShort(diags, fs, o.notes))
		return err
	default:
		return fmt.Errorf("unknown format: %s (expected pretty|json|short)", o.format)
	}
}

// errDiagnostics is returned by commands whose input had errors; the
// diagnostics themselves are already printed.
var errDiagnostics = errors.New("diagnostics reported errors")
