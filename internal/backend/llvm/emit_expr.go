package llvm

import (
	"fmt"
	"math"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/types"
)

func (e *Emitter) emitLiteral(id ast.NodeID, n *ast.Node) error {
	lit, ok := e.tree.Literal(id)
	if !ok {
		return fmt.Errorf("llvm: literal %d has no payload", id)
	}
	var text string
	switch lit.Type {
	case types.Integer:
		v, err := lit.Int()
		if err != nil {
			return fmt.Errorf("llvm: literal %d: %w", id, err)
		}
		text = fmt.Sprintf("%d", v)
	case types.Double:
		v, err := lit.Float()
		if err != nil {
			return fmt.Errorf("llvm: literal %d: %w", id, err)
		}
		text = formatDouble(v)
	case types.Boolean:
		text = "false"
		if lit.Bool() {
			text = "true"
		}
	default:
		return fmt.Errorf("llvm: literal %d has type %s", id, lit.Type)
	}
	ty := lit.Type.LLVM()
	slot := scratchSlot(lit.Type)
	fmt.Fprintf(&e.buf, "  store %s %s, ptr %s\n", ty, text, slot)
	fmt.Fprintf(&e.buf, "  %s = load %s, ptr %s\n", e.value(id), ty, slot)
	return nil
}

// formatDouble uses the hexadecimal bit pattern so no precision is lost.
func formatDouble(v float64) string {
	return fmt.Sprintf("0x%016X", math.Float64bits(v))
}

func (e *Emitter) storage(id ast.NodeID) (*ast.Variable, error) {
	name, _ := e.tree.Name(id)
	v, ok := e.links.Lookup(id, name)
	if !ok {
		return nil, fmt.Errorf("llvm: node %d: unresolved name %q", id, name)
	}
	return v, nil
}

func (e *Emitter) emitIdentifier(id ast.NodeID, n *ast.Node) error {
	v, err := e.storage(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  %s = load %s, ptr %%%s\n", e.value(id), v.Type.LLVM(), v.Storage)
	return nil
}

func (e *Emitter) emitAssign(id ast.NodeID, n *ast.Node) error {
	v, err := e.storage(id)
	if err != nil {
		return err
	}
	rhs := n.Children[0]
	if err := e.emitNode(rhs); err != nil {
		return err
	}
	ty := v.Type.LLVM()
	fmt.Fprintf(&e.buf, "  store %s %s, ptr %%%s\n", ty, e.value(rhs), v.Storage)
	fmt.Fprintf(&e.buf, "  %s = load %s, ptr %%%s\n", e.value(id), ty, v.Storage)
	return nil
}

func (e *Emitter) emitWrapper(id ast.NodeID, n *ast.Node) error {
	child := n.Children[0]
	if err := e.emitNode(child); err != nil {
		return err
	}
	from, to := e.typeOf(child), e.typeOf(id)
	var inst string
	switch {
	case from == to:
		inst = "bitcast"
	case from == types.Integer && to == types.Double:
		inst = "sitofp"
	case from == types.Double && to == types.Integer:
		inst = "fptosi"
	case from == types.Boolean && to == types.Integer:
		inst = "zext"
	default:
		return fmt.Errorf("llvm: wrapper %d converts %s to %s", id, from, to)
	}
	fmt.Fprintf(&e.buf, "  %s = %s %s %s to %s\n", e.value(id), inst, from.LLVM(), e.value(child), to.LLVM())
	return nil
}

var (
	intOps = map[ast.Op]string{
		ast.OpAdd: "add", ast.OpSub: "sub", ast.OpMul: "mul", ast.OpDiv: "sdiv",
		ast.OpEq: "icmp eq", ast.OpNe: "icmp ne",
		ast.OpLt: "icmp slt", ast.OpLe: "icmp sle", ast.OpGt: "icmp sgt", ast.OpGe: "icmp sge",
		ast.OpBitAnd: "and", ast.OpBitOr: "or",
	}
	floatOps = map[ast.Op]string{
		ast.OpAdd: "fadd", ast.OpSub: "fsub", ast.OpMul: "fmul", ast.OpDiv: "fdiv",
		ast.OpEq: "fcmp oeq", ast.OpNe: "fcmp one",
		ast.OpLt: "fcmp olt", ast.OpLe: "fcmp ole", ast.OpGt: "fcmp ogt", ast.OpGe: "fcmp oge",
	}
)

// binaryInst picks the instruction for op over operands of type operand.
func binaryInst(op ast.Op, operand types.Type) (string, bool) {
	if operand == types.Double {
		inst, ok := floatOps[op]
		return inst, ok
	}
	inst, ok := intOps[op]
	return inst, ok
}

func (e *Emitter) emitBinary(id ast.NodeID, n *ast.Node) error {
	left, right := n.Children[0], n.Children[1]
	if err := e.emitNode(left); err != nil {
		return err
	}
	if err := e.emitNode(right); err != nil {
		return err
	}
	op, _ := e.tree.Op(id)
	operand := e.typing.Operand(id)
	inst, ok := binaryInst(op, operand)
	if !ok {
		return fmt.Errorf("llvm: operator %s on %s", op, operand)
	}
	fmt.Fprintf(&e.buf, "  %s = %s %s %s, %s\n", e.value(id), inst, operand.LLVM(), e.value(left), e.value(right))
	return nil
}

func (e *Emitter) emitUnary(id ast.NodeID, n *ast.Node) error {
	operand := n.Children[0]
	if err := e.emitNode(operand); err != nil {
		return err
	}
	op, _ := e.tree.Op(id)
	x := e.value(operand)
	ty := e.typeOf(id)
	switch {
	case op == ast.OpNeg && ty == types.Double:
		fmt.Fprintf(&e.buf, "  %s = fneg double %s\n", e.value(id), x)
	case op == ast.OpNeg && ty == types.Integer:
		fmt.Fprintf(&e.buf, "  %s = sub i32 0, %s\n", e.value(id), x)
	case op == ast.OpBitNot:
		fmt.Fprintf(&e.buf, "  %s = xor i32 %s, -1\n", e.value(id), x)
	case op == ast.OpNot:
		fmt.Fprintf(&e.buf, "  %s = select i1 %s, i1 false, i1 true\n", e.value(id), x)
	default:
		return fmt.Errorf("llvm: unary %s on %s", op, ty)
	}
	return nil
}

// emitLogical lowers && and || with short-circuit control flow:
//
//	start: decide on the left value, jump to rhs or straight to end
//	rhs:   evaluate the right operand
//	seam:  the block control leaves the right operand from
//	end:   phi of the short-circuit constant and the right value
func (e *Emitter) emitLogical(id ast.NodeID, n *ast.Node) error {
	left, right := n.Children[0], n.Children[1]
	if err := e.emitNode(left); err != nil {
		return err
	}
	op, _ := e.tree.Op(id)
	start, rhs := label("log.start", id), label("log.rhs", id)
	seam, end := label("log.seam", id), label("log.end", id)

	// && stops on false, || stops on true
	shortCircuit := "false"
	onTrue, onFalse := rhs, end
	if op == ast.OpOr {
		shortCircuit = "true"
		onTrue, onFalse = end, rhs
	}

	fmt.Fprintf(&e.buf, "  br label %%%s\n", start)
	fmt.Fprintf(&e.buf, "%s:\n", start)
	fmt.Fprintf(&e.buf, "  br i1 %s, label %%%s, label %%%s\n", e.value(left), onTrue, onFalse)
	fmt.Fprintf(&e.buf, "%s:\n", rhs)
	if err := e.emitNode(right); err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  br label %%%s\n", seam)
	fmt.Fprintf(&e.buf, "%s:\n", seam)
	fmt.Fprintf(&e.buf, "  br label %%%s\n", end)
	fmt.Fprintf(&e.buf, "%s:\n", end)
	fmt.Fprintf(&e.buf, "  %s = phi i1 [ %s, %%%s ], [ %s, %%%s ]\n",
		e.value(id), shortCircuit, start, e.value(right), seam)
	return nil
}
