// Package driver runs the compilation pipeline for one source file:
// parse, semantic checks, hoisting and IR emission.
package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/backend/llvm"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/hoist"
	"github.com/maciek-pioro/compiler/internal/observ"
	"github.com/maciek-pioro/compiler/internal/parser"
	"github.com/maciek-pioro/compiler/internal/sema"
	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/trace"
)

const defaultMaxDiagnostics = 100

type Options struct {
	MaxDiagnostics int
	TargetTriple   string
	Timer          *observ.Timer // may be nil
	Observer       PhaseObserver // may be nil
}

// Output of one compilation. IR is empty unless OK.
type Output struct {
	File        *source.File    // nil for CompileTree
	FileSet     *source.FileSet // owner of File, for rendering diagnostics
	Tree        *ast.Tree
	Sema        sema.Result
	Plan        *hoist.Plan
	IR          string
	Diagnostics []diag.Diagnostic
	OK          bool
}

type compilation struct {
	ctx     context.Context
	spanCtx context.Context
	opts    Options
	bag     *diag.Bag
	out     Output
}

func newCompilation(ctx context.Context, opts Options) *compilation {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	return &compilation{
		ctx:  ctx,
		opts: opts,
		bag:  diag.NewBag(opts.MaxDiagnostics),
	}
}

func startPassSpan(ctx context.Context, name string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, trace.ScopePass, name)
}

func (c *compilation) reporter() diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: c.bag})
}

func (c *compilation) finish() Output {
	c.bag.Sort()
	c.out.Diagnostics = c.bag.Items()
	c.out.OK = c.out.OK && !c.bag.HasErrors()
	if !c.out.OK {
		c.out.IR = ""
	}
	return c.out
}

// CompileTree runs the semantic passes and code generation over a tree
// built through the tree construction API. Any validation error suppresses
// the IR.
func CompileTree(ctx context.Context, tree *ast.Tree, opts Options) Output {
	c := newCompilation(ctx, opts)
	c.out.Tree = tree
	c.lower(tree)
	return c.finish()
}

// CompileFile parses and compiles a file already present in fs.
func CompileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) Output {
	c := newCompilation(ctx, opts)
	c.out.FileSet = fs
	file := fs.Get(id)
	if file == nil {
		c.bag.Add(diag.NewError(diag.IOLoadFileError, source.Pos{}, fmt.Sprintf("unknown file id %d", id)))
		return c.finish()
	}
	c.out.File = file
	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "compile:"+source.BaseName(file.Path))
	c.ctx = ctx
	defer func() { span.End(fmt.Sprintf("ok=%v", c.out.OK)) }()

	maxErrors, err := safecast.Conv[uint](c.opts.MaxDiagnostics)
	if err != nil {
		maxErrors = defaultMaxDiagnostics
	}
	ph := c.begin(PhaseParse)
	res := parser.ParseFile(file, parser.Options{Reporter: c.reporter(), MaxErrors: maxErrors})
	ph.finish(res.OK)
	c.out.Tree = res.Tree
	if !res.OK {
		return c.finish()
	}
	c.lower(res.Tree)
	return c.finish()
}

// CompileSource compiles an in-memory source under the given name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) Output {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return CompileFile(ctx, fs, id, opts)
}

// Compile loads path from disk and compiles it.
func Compile(ctx context.Context, path string, opts Options) (Output, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return Output{}, fmt.Errorf("load %s: %w", path, err)
	}
	return CompileFile(ctx, fs, id, opts), nil
}

// lower runs sema, hoisting and emission. c.out.OK is set only when all of
// them succeed.
func (c *compilation) lower(tree *ast.Tree) {
	if tree == nil || !tree.Root.IsValid() {
		c.bag.Add(diag.NewError(diag.SemaMalformedTree, source.Pos{}, "tree has no program root"))
		return
	}
	if err := tree.Err(); err != nil {
		c.bag.Add(diag.NewError(diag.SemaMalformedTree, source.AtLine(tree.File, 1), err.Error()))
		return
	}

	ph := c.begin(PhaseSema)
	res := sema.Check(c.spanCtx, tree, sema.Options{Reporter: c.reporter()})
	ph.finish(res.OK)
	c.out.Sema = res
	if !res.OK {
		return
	}

	ph = c.begin(PhaseHoist)
	plan := hoist.Build(tree)
	ph.finish(true)
	c.out.Plan = plan

	ph = c.begin(PhaseEmit)
	moduleID := ""
	if c.out.File != nil {
		moduleID = source.BaseName(c.out.File.Path)
	}
	ir, err := llvm.EmitModule(tree, res, plan, llvm.Options{
		TargetTriple: c.opts.TargetTriple,
		ModuleID:     moduleID,
	})
	ph.finish(err == nil)
	if err != nil {
		c.bag.Add(diag.NewError(diag.SemaMalformedTree, source.AtLine(tree.File, 1), err.Error()))
		return
	}
	c.out.IR = ir
	c.out.OK = true
}
