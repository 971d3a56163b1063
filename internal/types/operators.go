package types

// OperandSpec describes an operator class: how the common operand type is
// derived from the natural operand types and what the operator yields.
type OperandSpec struct {
	Operand func(a, b Type) Type
	// Result is the type of the operator node itself; None means "same as operand".
	Result Type
}

var (
	// MathSpec covers + - * /.
	MathSpec = OperandSpec{Operand: Arithmetic}
	// RelationSpec covers == != < <= > >=.
	RelationSpec = OperandSpec{Operand: MoreGeneral, Result: Boolean}
	// BitwiseSpec covers | &.
	BitwiseSpec = OperandSpec{Operand: func(Type, Type) Type { return Integer }}
	// LogicalSpec covers && ||.
	LogicalSpec = OperandSpec{Operand: func(Type, Type) Type { return Boolean }, Result: Boolean}
)

// ResultOf returns the type of the operator node for the given operand type.
func (s OperandSpec) ResultOf(operand Type) Type {
	if s.Result != None {
		return s.Result
	}
	return operand
}
