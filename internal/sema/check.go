package sema

import (
	"context"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/trace"
)

// Options configure a semantic pass over a tree.
type Options struct {
	Reporter diag.Reporter
}

// Result stores semantic artefacts consumed by hoisting and code generation.
type Result struct {
	Links  *Links
	Typing *Typing
	OK     bool
}

// Check links the tree, resolves every type and validates the result.
// All three passes always run over the whole tree; OK is false when any
// diagnostic was reported.
func Check(ctx context.Context, tree *ast.Tree, opts Options) Result {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	span := trace.Begin(tracer, trace.ScopePass, "link", parent)
	links := Link(tree)
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "resolve", parent)
	typing := Resolve(tree, links)
	span.End("")

	span = trace.Begin(tracer, trace.ScopePass, "validate", parent)
	ok := Validate(tree, links, typing, opts.Reporter)
	span.End(validateDetail(ok))

	return Result{Links: links, Typing: typing, OK: ok}
}

func validateDetail(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
