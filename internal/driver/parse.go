package driver

import (
	"fortio.org/safecast"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/parser"
	"github.com/maciek-pioro/compiler/internal/sema"
	"github.com/maciek-pioro/compiler/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	// Typing is filled when the tree parsed cleanly, so dumps can show types.
	Typing *sema.Typing
	Bag    *diag.Bag
	OK     bool
}

// Parse parses a file from disk without running the checks that would
// stop at the first invalid program; types are resolved for display only.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	out := &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    res.Tree,
		Bag:     bag,
		OK:      res.OK,
	}
	if res.OK {
		out.Typing = sema.Resolve(res.Tree, sema.Link(res.Tree))
	}
	return out, nil
}
