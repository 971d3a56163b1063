package sema

import (
	"context"
	"testing"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/types"
)

type decl struct {
	name string
	typ  types.Type
	line uint32
}

// scope builds a DeclarationList + InstructionList pair.
func scope(tree *ast.Tree, line uint32, decls []decl, stmts ...ast.NodeID) (ast.NodeID, ast.NodeID) {
	vars := make([]ast.NodeID, 0, len(decls))
	for _, d := range decls {
		l := d.line
		if l == 0 {
			l = line
		}
		vars = append(vars, tree.NewVariable(d.name, d.typ, l))
	}
	return tree.NewDeclarationList(vars, line), tree.NewInstructionList(stmts, line)
}

func program(tree *ast.Tree, decls []decl, stmts ...ast.NodeID) ast.NodeID {
	d, b := scope(tree, 1, decls, stmts...)
	return tree.NewProgram(d, b, 1)
}

func block(tree *ast.Tree, line uint32, decls []decl, stmts ...ast.NodeID) ast.NodeID {
	d, b := scope(tree, line, decls, stmts...)
	return tree.NewBlock(d, b, line)
}

func intLit(tree *ast.Tree, text string) ast.NodeID {
	return tree.NewLiteral(types.Integer, text, 1)
}

func check(t *testing.T, tree *ast.Tree) (Result, *diag.Bag) {
	t.Helper()
	if err := tree.Err(); err != nil {
		t.Fatalf("tree construction failed: %v", err)
	}
	bag := diag.NewBag(64)
	res := Check(context.Background(), tree, Options{Reporter: diag.BagReporter{Bag: bag}})
	return res, bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := codes(bag)
	if len(got) != len(want) {
		t.Fatalf("got diagnostics %v, want %v (%v)", got, want, bag.Items())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diagnostic %d is %s, want %s (%v)", i, got[i].ID(), want[i].ID(), bag.Items())
		}
	}
}
