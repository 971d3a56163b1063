package ast

import "fmt"

// Op is an operator symbol carried by operator nodes.
type Op uint8

const (
	OpInvalid Op = iota
	// MathOperator
	OpAdd
	OpSub
	OpMul
	OpDiv
	// Relation
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	// Logical
	OpAnd
	OpOr
	// Bitwise
	OpBitOr
	OpBitAnd
	// Unary
	OpNeg
	OpBitNot
	OpNot
)

var opSymbols = [...]string{
	OpInvalid: "?",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpEq:      "==",
	OpNe:      "!=",
	OpLt:      "<",
	OpLe:      "<=",
	OpGt:      ">",
	OpGe:      ">=",
	OpAnd:     "&&",
	OpOr:      "||",
	OpBitOr:   "|",
	OpBitAnd:  "&",
	OpNeg:     "-",
	OpBitNot:  "~",
	OpNot:     "!",
}

func (op Op) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Kind returns the node kind that carries op.
func (op Op) Kind() Kind {
	switch {
	case op >= OpAdd && op <= OpDiv:
		return KindMath
	case op >= OpEq && op <= OpGe:
		return KindRelation
	case op == OpAnd || op == OpOr:
		return KindLogical
	case op == OpBitOr || op == OpBitAnd:
		return KindBitwise
	case op >= OpNeg && op <= OpNot:
		return KindUnary
	default:
		return KindInvalid
	}
}

// IsEquality reports whether op is == or !=.
func (op Op) IsEquality() bool {
	return op == OpEq || op == OpNe
}

// ParseOp maps an operator symbol to the op of the given node kind.
// "-" is ambiguous between OpSub and OpNeg, hence the kind.
func ParseOp(kind Kind, symbol string) (Op, bool) {
	for op := OpAdd; op <= OpNot; op++ {
		if op.Kind() == kind && opSymbols[op] == symbol {
			return op, true
		}
	}
	return OpInvalid, false
}
