package hoist

import (
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/types"
)

func TestCollapse(t *testing.T) {
	be.Equal(t, Collapse(`a\nb`), []byte{'a', '\n', 'b', 0})
	be.Equal(t, Collapse(`\"q\"\\`), []byte{'"', 'q', '"', '\\', 0})
	be.Equal(t, Collapse(`\t\r`), []byte{'\t', '\r', 0})
	be.Equal(t, Collapse(""), []byte{0})
	be.Equal(t, len(Collapse(`a\nb`)), 4)
}

func TestBuildFindsNestedItems(t *testing.T) {
	tree := ast.NewTree(0, ast.Hints{})
	outer := tree.NewVariable("a", types.Integer, 1)
	inner := tree.NewVariable("b", types.Double, 3)
	s1 := tree.NewString("first", 2)
	s2 := tree.NewString(`second\n`, 4)

	blk := tree.NewBlock(
		tree.NewDeclarationList([]ast.NodeID{inner}, 3),
		tree.NewInstructionList([]ast.NodeID{tree.NewWrite(s2, false, 4)}, 3), 3)
	loop := tree.NewWhile(tree.NewLiteral(types.Boolean, "true", 3), blk, 3)
	tree.NewProgram(
		tree.NewDeclarationList([]ast.NodeID{outer}, 1),
		tree.NewInstructionList([]ast.NodeID{tree.NewWrite(s1, false, 2), loop}, 1), 1)
	be.Err(t, tree.Err(), nil)

	plan := Build(tree)
	be.Equal(t, len(plan.Strings), 2)
	be.Equal(t, plan.Strings[0].Node, s1)
	be.Equal(t, plan.Strings[1].Node, s2)
	be.Equal(t, len(plan.Strings[1].Bytes), 8)

	be.Equal(t, len(plan.Declarations), 2)
	be.Equal(t, plan.Declarations[0].Node, outer)
	be.Equal(t, plan.Declarations[1].Node, inner)

	c, ok := plan.String(s2)
	be.True(t, ok)
	be.Equal(t, c.Symbol, fmt.Sprintf("str.%d", s2))
	_, ok = plan.String(outer)
	be.True(t, !ok)
}
