// Package llvm lowers a checked tree to textual LLVM IR. The whole program
// becomes a single main function that talks to the C runtime through printf
// and scanf.
package llvm

import (
	"fmt"
	"strings"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/hoist"
	"github.com/maciek-pioro/compiler/internal/sema"
	"github.com/maciek-pioro/compiler/internal/types"
)

// Options tune the module header.
type Options struct {
	// TargetTriple is emitted as the module triple when set.
	TargetTriple string
	// ModuleID is emitted as the leading ModuleID comment when set.
	ModuleID string
}

type Emitter struct {
	tree   *ast.Tree
	links  *sema.Links
	typing *sema.Typing
	plan   *hoist.Plan
	opts   Options
	buf    strings.Builder
}

// EmitModule renders the module for a tree that passed semantic checks.
// Errors signal an inconsistent tree or side table, never a user mistake.
func EmitModule(tree *ast.Tree, res sema.Result, plan *hoist.Plan, opts Options) (string, error) {
	if tree == nil || !tree.Root.IsValid() {
		return "", fmt.Errorf("llvm: empty tree")
	}
	if !res.OK || res.Links == nil || res.Typing == nil {
		return "", fmt.Errorf("llvm: tree did not pass semantic checks")
	}
	if plan == nil {
		plan = hoist.Build(tree)
	}
	e := &Emitter{
		tree:   tree,
		links:  res.Links,
		typing: res.Typing,
		plan:   plan,
		opts:   opts,
	}
	e.emitHeader()
	e.emitFormats()
	e.emitStringConsts()
	e.emitRuntimeDecls()
	if err := e.emitMain(); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

func (e *Emitter) emitHeader() {
	if e.opts.ModuleID != "" {
		fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n", e.opts.ModuleID)
	}
	if e.opts.TargetTriple != "" {
		fmt.Fprintf(&e.buf, "target triple = %q\n", e.opts.TargetTriple)
	}
	if e.opts.ModuleID != "" || e.opts.TargetTriple != "" {
		e.buf.WriteString("\n")
	}
}

func (e *Emitter) emitMain() error {
	e.buf.WriteString("define i32 @main() {\n")
	e.buf.WriteString("entry:\n")
	for _, ty := range scratchTypes {
		fmt.Fprintf(&e.buf, "  %s = alloca %s\n", scratchSlot(ty), ty.LLVM())
	}
	for _, d := range e.plan.Declarations {
		v := e.tree.Var(d.Var)
		if v == nil {
			return fmt.Errorf("llvm: declaration %d has no variable", d.Node)
		}
		fmt.Fprintf(&e.buf, "  %%%s = alloca %s\n", d.Storage, v.Type.LLVM())
	}
	if err := e.emitNode(e.tree.Root); err != nil {
		return err
	}
	e.buf.WriteString("  ret i32 0\n")
	e.buf.WriteString("}\n")
	return nil
}

// emitNode lowers a node after its children. Value-producing nodes leave
// their result in %tmp_<id>.
func (e *Emitter) emitNode(id ast.NodeID) error {
	n := e.tree.Get(id)
	if n == nil {
		return fmt.Errorf("llvm: unknown node %d", id)
	}
	switch n.Kind {
	case ast.KindProgram, ast.KindBlock:
		// declarations were hoisted into the entry block
		return e.emitNode(n.Children[1])
	case ast.KindInstructionList:
		for _, ch := range n.Children {
			if err := e.emitNode(ch); err != nil {
				return err
			}
		}
		return nil
	case ast.KindDeclarationList, ast.KindVariable, ast.KindString:
		return nil
	case ast.KindLiteral:
		return e.emitLiteral(id, n)
	case ast.KindIdentifier:
		return e.emitIdentifier(id, n)
	case ast.KindAssign:
		return e.emitAssign(id, n)
	case ast.KindWrapper:
		return e.emitWrapper(id, n)
	case ast.KindMath, ast.KindRelation, ast.KindBitwise:
		return e.emitBinary(id, n)
	case ast.KindLogical:
		return e.emitLogical(id, n)
	case ast.KindUnary:
		return e.emitUnary(id, n)
	case ast.KindIf:
		return e.emitIf(id, n)
	case ast.KindWhile:
		return e.emitWhile(id, n)
	case ast.KindWrite:
		return e.emitWrite(id, n)
	case ast.KindRead:
		return e.emitRead(id, n)
	case ast.KindReturn:
		e.buf.WriteString("  ret i32 0\n")
		fmt.Fprintf(&e.buf, "%s:\n", label("ret.after", id))
		return nil
	case ast.KindInvalid:
		return fmt.Errorf("llvm: invalid node %d", id)
	}
	return fmt.Errorf("llvm: unsupported node kind %s", n.Kind)
}

// value returns the SSA name holding the result of id.
func (e *Emitter) value(id ast.NodeID) string {
	return "%" + e.tree.Get(id).Slot
}

func (e *Emitter) typeOf(id ast.NodeID) types.Type {
	return e.typing.Type(id)
}

func label(prefix string, id ast.NodeID) string {
	return fmt.Sprintf("%s.%d", prefix, id)
}
