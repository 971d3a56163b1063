package ast

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/maciek-pioro/compiler/internal/source"
)

var (
	// ErrChildOwned is recorded when a node is attached to a second parent.
	ErrChildOwned = errors.New("ast: child already owned")
	// ErrBadChild is recorded when a constructor receives an unknown id or a
	// node of the wrong kind.
	ErrBadChild = errors.New("ast: invalid child")
	// ErrSecondProgram is recorded when NewProgram is called twice.
	ErrSecondProgram = errors.New("ast: program already built")
)

type Hints struct{ Nodes, Vars uint }

// Tree is the compilation context of one run: it owns every node and every
// variable, and its arenas are the only id counters. Two trees never share
// state, so repeated compilations are deterministic.
type Tree struct {
	File  source.FileID
	Root  NodeID
	Nodes *Arena[Node]
	Vars  *Arena[Variable]

	literals *Arena[LiteralData]
	names    *Arena[NameData]
	ops      *Arena[OpData]
	wrappers *Arena[WrapperData]
	writes   *Arena[WriteData]
	reads    *Arena[ReadData]
	strs     *Arena[StringData]

	errs []error
}

func NewTree(file source.FileID, hints Hints) *Tree {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	if hints.Vars == 0 {
		hints.Vars = 1 << 4
	}
	return &Tree{
		File:     file,
		Nodes:    NewArena[Node](hints.Nodes),
		Vars:     NewArena[Variable](hints.Vars),
		literals: NewArena[LiteralData](hints.Nodes / 4),
		names:    NewArena[NameData](hints.Nodes / 4),
		ops:      NewArena[OpData](hints.Nodes / 4),
		wrappers: NewArena[WrapperData](hints.Nodes / 2),
		writes:   NewArena[WriteData](hints.Vars),
		reads:    NewArena[ReadData](hints.Vars),
		strs:     NewArena[StringData](hints.Vars),
	}
}

// Err reports construction errors (ownership violations, bad children).
func (t *Tree) Err() error {
	return errors.Join(t.errs...)
}

// Get returns the node with the given id or nil.
func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Len is the number of nodes; valid ids are 1..Len.
func (t *Tree) Len() uint32 {
	return t.Nodes.Len()
}

// Kind returns the kind of id, KindInvalid for unknown ids.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Get(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Children returns the ordered child list of id.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Get(id); n != nil {
		return n.Children
	}
	return nil
}

// Child returns the i-th child or NoNodeID.
func (t *Tree) Child(id NodeID, i int) NodeID {
	ch := t.Children(id)
	if i < 0 || i >= len(ch) {
		return NoNodeID
	}
	return ch[i]
}

// Var returns the declared variable.
func (t *Tree) Var(id VarID) *Variable {
	return t.Vars.Get(uint32(id))
}

func (t *Tree) fail(err error) {
	t.errs = append(t.errs, err)
}

func (t *Tree) newNode(kind Kind, line uint32, payload PayloadID, children ...NodeID) NodeID {
	for _, ch := range children {
		t.adopt(kind, ch)
	}
	id := NodeID(t.Nodes.Allocate(Node{
		Kind:     kind,
		Line:     line,
		Children: children,
		Payload:  payload,
	}))
	t.Get(id).Slot = "tmp_" + strconv.FormatUint(uint64(id), 10)
	return id
}

func (t *Tree) adopt(parent Kind, child NodeID) {
	n := t.Get(child)
	if n == nil {
		t.fail(fmt.Errorf("%w: %s got unknown node %d", ErrBadChild, parent, child))
		return
	}
	if n.owned {
		t.fail(fmt.Errorf("%w: node %d (%s) attached to %s", ErrChildOwned, child, n.Kind, parent))
		return
	}
	n.owned = true
}

func (t *Tree) expectKind(parent Kind, child NodeID, want ...Kind) {
	got := t.Kind(child)
	for _, k := range want {
		if got == k {
			return
		}
	}
	t.fail(fmt.Errorf("%w: %s cannot own %s (node %d)", ErrBadChild, parent, got, child))
}

func (t *Tree) expectExpr(parent Kind, child NodeID) {
	if !t.Kind(child).IsExpression() {
		t.fail(fmt.Errorf("%w: %s needs an expression, got %s (node %d)", ErrBadChild, parent, t.Kind(child), child))
	}
}

// wrap creates the implicit coercion wrapper every operand sits behind.
func (t *Tree) wrap(child NodeID, line uint32) NodeID {
	payload := PayloadID(t.wrappers.Allocate(WrapperData{}))
	return t.newNode(KindWrapper, line, payload, child)
}
