package ast

import "fmt"

// Kind is the closed set of node variants. Passes switch over it exhaustively.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindBlock
	KindDeclarationList
	KindInstructionList
	KindLiteral
	KindVariable
	KindIdentifier
	KindAssign
	KindMath
	KindRelation
	KindLogical
	KindBitwise
	KindUnary
	KindWrapper
	KindIf
	KindWhile
	KindWrite
	KindRead
	KindString
	KindReturn
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindProgram:         "Program",
	KindBlock:           "Block",
	KindDeclarationList: "DeclarationList",
	KindInstructionList: "InstructionList",
	KindLiteral:         "Literal",
	KindVariable:        "Variable",
	KindIdentifier:      "Identifier",
	KindAssign:          "Assign",
	KindMath:            "MathOperator",
	KindRelation:        "Relation",
	KindLogical:         "Logical",
	KindBitwise:         "Bitwise",
	KindUnary:           "Unary",
	KindWrapper:         "Wrapper",
	KindIf:              "If",
	KindWhile:           "While",
	KindWrite:           "Write",
	KindRead:            "Read",
	KindString:          "StringLiteral",
	KindReturn:          "Return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsScope reports whether nodes of kind k introduce a declaration scope.
func (k Kind) IsScope() bool {
	return k == KindProgram || k == KindBlock
}

// IsBinary reports whether k is one of the four binary operator kinds.
func (k Kind) IsBinary() bool {
	switch k {
	case KindMath, KindRelation, KindLogical, KindBitwise:
		return true
	default:
		return false
	}
}

// IsStatement reports whether a node of kind k may appear in an InstructionList.
func (k Kind) IsStatement() bool {
	switch k {
	case KindBlock, KindIf, KindWhile, KindWrite, KindRead, KindReturn:
		return true
	default:
		return k.IsExpression()
	}
}

// IsExpression reports whether nodes of kind k produce a value.
func (k Kind) IsExpression() bool {
	switch k {
	case KindLiteral, KindIdentifier, KindAssign, KindMath, KindRelation,
		KindLogical, KindBitwise, KindUnary, KindWrapper:
		return true
	default:
		return false
	}
}
