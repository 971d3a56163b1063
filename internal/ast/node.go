package ast

import (
	"strconv"

	"github.com/maciek-pioro/compiler/internal/types"
)

// Node is one tree node. Children are owned exclusively; the parent relation is
// not stored here (see sema.Link).
type Node struct {
	Kind     Kind
	Line     uint32 // 1-based source line
	Slot     string // result slot, "tmp_<id>"
	Children []NodeID
	Payload  PayloadID
	owned    bool
}

// Variable is a declared name. Storage is the unique IR stack-slot name.
type Variable struct {
	Name    string
	Type    types.Type
	Storage string
	Line    uint32
	Node    NodeID
}

// LiteralData: Text is the source spelling ("31", "0x1F", "2.5", "true").
type LiteralData struct {
	Type types.Type
	Text string
}

// IsHex reports whether an integer literal was written in base 16.
func (l *LiteralData) IsHex() bool {
	return len(l.Text) > 2 && l.Text[0] == '0' && (l.Text[1] == 'x' || l.Text[1] == 'X')
}

// NameData is the payload of Identifier and Assign.
type NameData struct {
	Name string
}

type OpData struct {
	Op Op
}

// WrapperData: Target is only meaningful for explicit wrappers; implicit ones
// take the type pushed down by their parent.
type WrapperData struct {
	Target   types.Type
	Explicit bool
}

// WriteData: Hex selects the "%X" format for integers.
type WriteData struct {
	Hex bool
}

type ReadData struct {
	Name string
	Hex  bool
}

// StringData: Raw is the literal body between the quotes with escapes intact.
type StringData struct {
	Raw string
}

// Int returns the 32-bit value of an integer literal. Hex literals cover the
// full unsigned range and wrap, so 0xFFFFFFFF is -1.
func (l *LiteralData) Int() (int32, error) {
	if l.IsHex() {
		u, err := strconv.ParseUint(l.Text[2:], 16, 32)
		if err != nil {
			return 0, err
		}
		return int32(uint32(u)), nil // #nosec G115 -- wrap is intended
	}
	d, err := strconv.ParseInt(l.Text, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(d), nil
}

// Float returns the value of a double literal.
func (l *LiteralData) Float() (float64, error) {
	return strconv.ParseFloat(l.Text, 64)
}

// Bool returns the value of a bool literal.
func (l *LiteralData) Bool() bool {
	return l.Text == "true"
}
