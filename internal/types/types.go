package types

import "fmt"

// Type is one of the four value types of the language. None marks nodes that
// produce no value (statements, lists) and types that are not resolved yet.
type Type uint8

const (
	None Type = iota
	Boolean
	Integer
	Double
	String
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Boolean:
		return "bool"
	case Integer:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// LLVM returns the IR spelling of the type.
func (t Type) LLVM() string {
	switch t {
	case Boolean:
		return "i1"
	case Integer:
		return "i32"
	case Double:
		return "double"
	case String:
		return "ptr"
	default:
		return "void"
	}
}

// IsValue reports whether t can be held by an expression.
func (t Type) IsValue() bool {
	return t >= Boolean && t <= String
}

// IsNumeric reports whether arithmetic and ordering work on t.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Double
}

// rank orders the numeric lattice: Double > Integer > Boolean.
func (t Type) rank() int {
	switch t {
	case Boolean:
		return 1
	case Integer:
		return 2
	case Double:
		return 3
	default:
		return 0
	}
}

// MoreGeneral returns the common operand type of a and b. String absorbs
// everything so that mixing it with numbers surfaces as a conversion error.
func MoreGeneral(a, b Type) Type {
	if a == String || b == String {
		return String
	}
	if a.rank() >= b.rank() {
		return a
	}
	return b
}

// Arithmetic is the result type of + - * /: never narrower than Integer.
func Arithmetic(a, b Type) Type {
	return MoreGeneral(Integer, MoreGeneral(a, b))
}
