package ast

import (
	"errors"
	"testing"

	"github.com/maciek-pioro/compiler/internal/types"
)

// buildSum builds `program { int x; x = 3 + 2; write x; }`.
func buildSum(t *Tree) NodeID {
	x := t.NewVariable("x", types.Integer, 1)
	decls := t.NewDeclarationList([]NodeID{x}, 1)
	sum := t.NewMath(OpAdd, t.NewLiteral(types.Integer, "3", 2), t.NewLiteral(types.Integer, "2", 2), 2)
	assign := t.NewAssign("x", sum, 2)
	write := t.NewWrite(t.NewIdentifier("x", 3), false, 3)
	body := t.NewInstructionList([]NodeID{assign, write}, 1)
	return t.NewProgram(decls, body, 1)
}

func TestIDsAndSlotsAreUniqueAndMonotonic(t *testing.T) {
	tree := NewTree(0, Hints{})
	root := buildSum(tree)
	if err := tree.Err(); err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	if root != NodeID(tree.Len()) {
		t.Fatalf("program must be the last node built, got %d of %d", root, tree.Len())
	}
	seen := map[string]bool{}
	for i := uint32(1); i <= tree.Len(); i++ {
		n := tree.Get(NodeID(i))
		if seen[n.Slot] {
			t.Fatalf("slot %s used twice", n.Slot)
		}
		seen[n.Slot] = true
		for _, ch := range n.Children {
			if ch >= NodeID(i) {
				t.Fatalf("child %d of %d built after its parent", ch, i)
			}
		}
	}
	if tree.Get(root).Slot != "tmp_13" {
		t.Fatalf("unexpected root slot %q", tree.Get(root).Slot)
	}
}

func TestCountersArePerTree(t *testing.T) {
	a, b := NewTree(0, Hints{}), NewTree(0, Hints{})
	buildSum(a)
	buildSum(b)
	if a.Len() != b.Len() || a.Var(1).Storage != "var_1" || b.Var(1).Storage != "var_1" {
		t.Fatalf("two trees must number nodes and variables identically")
	}
}

func TestBinaryOperandsSitBehindImplicitWrappers(t *testing.T) {
	tree := NewTree(0, Hints{})
	l := tree.NewLiteral(types.Integer, "1", 1)
	r := tree.NewLiteral(types.Double, "2.0", 1)
	rel := tree.NewRelation(OpLt, l, r, 1)

	for i, want := range []NodeID{l, r} {
		w := tree.Child(rel, i)
		data, ok := tree.Wrapper(w)
		if !ok || data.Explicit {
			t.Fatalf("child %d of relation must be an implicit wrapper", i)
		}
		if tree.Unwrap(w) != want {
			t.Fatalf("wrapper %d holds %d, want %d", i, tree.Unwrap(w), want)
		}
	}
	if op, _ := tree.Op(rel); op != OpLt {
		t.Fatalf("unexpected op %v", op)
	}
}

func TestBitwiseWrapsRightOperandFirst(t *testing.T) {
	tree := NewTree(0, Hints{})
	l := tree.NewIdentifier("a", 1)
	r := tree.NewIdentifier("b", 1)
	bw := tree.NewBitwise(OpBitAnd, l, r, 1)
	lw, rw := tree.Child(bw, 0), tree.Child(bw, 1)
	if rw >= lw {
		t.Fatalf("right wrapper (%d) must be allocated before left (%d)", rw, lw)
	}
	if tree.Unwrap(lw) != l || tree.Unwrap(rw) != r {
		t.Fatalf("children order must stay left, right")
	}
}

func TestChildOwnedTwiceIsRejected(t *testing.T) {
	tree := NewTree(0, Hints{})
	lit := tree.NewLiteral(types.Integer, "1", 1)
	tree.NewWrite(lit, false, 1)
	tree.NewWrite(lit, false, 2)
	if err := tree.Err(); !errors.Is(err, ErrChildOwned) {
		t.Fatalf("expected ErrChildOwned, got %v", err)
	}
}

func TestWrongChildKindIsRejected(t *testing.T) {
	tree := NewTree(0, Hints{})
	lit := tree.NewLiteral(types.Integer, "1", 1)
	tree.NewDeclarationList([]NodeID{lit}, 1)
	if err := tree.Err(); !errors.Is(err, ErrBadChild) {
		t.Fatalf("expected ErrBadChild, got %v", err)
	}
}

func TestSecondProgramIsRejected(t *testing.T) {
	tree := NewTree(0, Hints{})
	buildSum(tree)
	buildSum(tree)
	if err := tree.Err(); !errors.Is(err, ErrSecondProgram) {
		t.Fatalf("expected ErrSecondProgram, got %v", err)
	}
}

func TestPreOrderAndCollect(t *testing.T) {
	tree := NewTree(0, Hints{})
	s1 := tree.NewString("first", 1)
	s2 := tree.NewString("second", 2)
	w1 := tree.NewWrite(s1, false, 1)
	inner := tree.NewBlock(tree.NewDeclarationList(nil, 2), tree.NewInstructionList([]NodeID{tree.NewWrite(s2, false, 2)}, 2), 2)
	root := tree.NewProgram(tree.NewDeclarationList(nil, 1), tree.NewInstructionList([]NodeID{w1, inner}, 1), 1)

	got := tree.Collect(root, KindString)
	if len(got) != 2 || got[0] != s1 || got[1] != s2 {
		t.Fatalf("unexpected string order %v", got)
	}
	lists := tree.Collect(root, KindDeclarationList)
	if len(lists) != 2 || tree.Child(root, 0) != lists[0] {
		t.Fatalf("outer declaration list must come first: %v", lists)
	}

	visited := 0
	tree.PreOrder(root, func(id NodeID, n *Node) bool {
		visited++
		return n.Kind != KindBlock
	})
	if visited != 6 {
		t.Fatalf("expected 6 visited nodes with the block pruned, got %d", visited)
	}
}

func TestParseOp(t *testing.T) {
	cases := []struct {
		kind   Kind
		symbol string
		want   Op
	}{
		{KindMath, "-", OpSub},
		{KindUnary, "-", OpNeg},
		{KindRelation, "<=", OpLe},
		{KindLogical, "||", OpOr},
		{KindBitwise, "&", OpBitAnd},
		{KindUnary, "~", OpBitNot},
	}
	for _, tc := range cases {
		got, ok := ParseOp(tc.kind, tc.symbol)
		if !ok || got != tc.want {
			t.Errorf("ParseOp(%v, %q) = %v, %v; want %v", tc.kind, tc.symbol, got, ok, tc.want)
		}
	}
	if _, ok := ParseOp(KindMath, "&&"); ok {
		t.Fatalf("&& is not a math operator")
	}
}

func TestLiteralHexDetection(t *testing.T) {
	tree := NewTree(0, Hints{})
	hex, _ := tree.Literal(tree.NewLiteral(types.Integer, "0x1F", 1))
	dec, _ := tree.Literal(tree.NewLiteral(types.Integer, "31", 1))
	if !hex.IsHex() || dec.IsHex() {
		t.Fatalf("hex detection is off")
	}
}
