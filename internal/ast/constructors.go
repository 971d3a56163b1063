package ast

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/types"
)

// NewProgram builds the root scope. It may be called once per tree.
func (t *Tree) NewProgram(decls, body NodeID, line uint32) NodeID {
	if t.Root.IsValid() {
		t.fail(ErrSecondProgram)
	}
	t.expectKind(KindProgram, decls, KindDeclarationList)
	t.expectKind(KindProgram, body, KindInstructionList)
	t.Root = t.newNode(KindProgram, line, NoPayloadID, decls, body)
	return t.Root
}

// NewBlock builds a nested scope.
func (t *Tree) NewBlock(decls, body NodeID, line uint32) NodeID {
	t.expectKind(KindBlock, decls, KindDeclarationList)
	t.expectKind(KindBlock, body, KindInstructionList)
	return t.newNode(KindBlock, line, NoPayloadID, decls, body)
}

// NewVariable declares name of type typ. The storage name comes from the
// tree's variable counter.
func (t *Tree) NewVariable(name string, typ types.Type, line uint32) NodeID {
	vid := VarID(t.Vars.Allocate(Variable{Name: name, Type: typ, Line: line}))
	v := t.Var(vid)
	v.Storage = fmt.Sprintf("var_%d", vid)
	v.Node = t.newNode(KindVariable, line, PayloadID(vid))
	return v.Node
}

// NewDeclarationList groups the variables of one scope. Duplicate names are
// kept; validation reports them.
func (t *Tree) NewDeclarationList(vars []NodeID, line uint32) NodeID {
	for _, v := range vars {
		t.expectKind(KindDeclarationList, v, KindVariable)
	}
	return t.newNode(KindDeclarationList, line, NoPayloadID, vars...)
}

func (t *Tree) NewInstructionList(stmts []NodeID, line uint32) NodeID {
	for _, s := range stmts {
		if !t.Kind(s).IsStatement() {
			t.fail(fmt.Errorf("%w: %s is not a statement (node %d)", ErrBadChild, t.Kind(s), s))
		}
	}
	return t.newNode(KindInstructionList, line, NoPayloadID, stmts...)
}

// NewLiteral builds an int, double or bool constant from its source spelling.
func (t *Tree) NewLiteral(typ types.Type, text string, line uint32) NodeID {
	payload := PayloadID(t.literals.Allocate(LiteralData{Type: typ, Text: text}))
	return t.newNode(KindLiteral, line, payload)
}

func (t *Tree) NewIdentifier(name string, line uint32) NodeID {
	payload := PayloadID(t.names.Allocate(NameData{Name: name}))
	return t.newNode(KindIdentifier, line, payload)
}

// NewAssign stores value into name. The value is placed behind an implicit
// wrapper that receives the variable's type.
func (t *Tree) NewAssign(name string, value NodeID, line uint32) NodeID {
	t.expectExpr(KindAssign, value)
	w := t.wrap(value, line)
	payload := PayloadID(t.names.Allocate(NameData{Name: name}))
	return t.newNode(KindAssign, line, payload, w)
}

func (t *Tree) binary(kind Kind, op Op, left, right NodeID, line uint32) NodeID {
	if op.Kind() != kind {
		t.fail(fmt.Errorf("%w: operator %q is not a %s operator", ErrBadChild, op, kind))
	}
	t.expectExpr(kind, left)
	t.expectExpr(kind, right)
	lw := t.wrap(left, line)
	rw := t.wrap(right, line)
	payload := PayloadID(t.ops.Allocate(OpData{Op: op}))
	return t.newNode(kind, line, payload, lw, rw)
}

func (t *Tree) NewMath(op Op, left, right NodeID, line uint32) NodeID {
	return t.binary(KindMath, op, left, right, line)
}

func (t *Tree) NewRelation(op Op, left, right NodeID, line uint32) NodeID {
	return t.binary(KindRelation, op, left, right, line)
}

func (t *Tree) NewLogical(op Op, left, right NodeID, line uint32) NodeID {
	return t.binary(KindLogical, op, left, right, line)
}

// NewBitwise wraps the right operand before the left one. The operators are
// commutative so only wrapper ids observe the order.
func (t *Tree) NewBitwise(op Op, left, right NodeID, line uint32) NodeID {
	if op.Kind() != KindBitwise {
		t.fail(fmt.Errorf("%w: operator %q is not a %s operator", ErrBadChild, op, KindBitwise))
	}
	t.expectExpr(KindBitwise, left)
	t.expectExpr(KindBitwise, right)
	rw := t.wrap(right, line)
	lw := t.wrap(left, line)
	payload := PayloadID(t.ops.Allocate(OpData{Op: op}))
	return t.newNode(KindBitwise, line, payload, lw, rw)
}

func (t *Tree) NewUnary(op Op, operand NodeID, line uint32) NodeID {
	if op.Kind() != KindUnary {
		t.fail(fmt.Errorf("%w: operator %q is not a unary operator", ErrBadChild, op))
	}
	t.expectExpr(KindUnary, operand)
	w := t.wrap(operand, line)
	payload := PayloadID(t.ops.Allocate(OpData{Op: op}))
	return t.newNode(KindUnary, line, payload, w)
}

// NewCast builds an explicit conversion of operand to target.
func (t *Tree) NewCast(target types.Type, operand NodeID, line uint32) NodeID {
	t.expectExpr(KindWrapper, operand)
	payload := PayloadID(t.wrappers.Allocate(WrapperData{Target: target, Explicit: true}))
	return t.newNode(KindWrapper, line, payload, operand)
}

// NewIf builds a conditional; pass NoNodeID for a missing else branch.
func (t *Tree) NewIf(cond, then, els NodeID, line uint32) NodeID {
	t.expectExpr(KindIf, cond)
	if !els.IsValid() {
		return t.newNode(KindIf, line, NoPayloadID, cond, then)
	}
	return t.newNode(KindIf, line, NoPayloadID, cond, then, els)
}

func (t *Tree) NewWhile(cond, body NodeID, line uint32) NodeID {
	t.expectExpr(KindWhile, cond)
	return t.newNode(KindWhile, line, NoPayloadID, cond, body)
}

// NewWrite prints value; value is an expression or a StringLiteral.
func (t *Tree) NewWrite(value NodeID, hex bool, line uint32) NodeID {
	if t.Kind(value) != KindString {
		t.expectExpr(KindWrite, value)
	}
	payload := PayloadID(t.writes.Allocate(WriteData{Hex: hex}))
	return t.newNode(KindWrite, line, payload, value)
}

func (t *Tree) NewRead(name string, hex bool, line uint32) NodeID {
	payload := PayloadID(t.reads.Allocate(ReadData{Name: name, Hex: hex}))
	return t.newNode(KindRead, line, payload)
}

// NewString builds a string literal; raw keeps escape sequences.
func (t *Tree) NewString(raw string, line uint32) NodeID {
	payload := PayloadID(t.strs.Allocate(StringData{Raw: raw}))
	return t.newNode(KindString, line, payload)
}

func (t *Tree) NewReturn(line uint32) NodeID {
	return t.newNode(KindReturn, line, NoPayloadID)
}
