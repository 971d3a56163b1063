package llvm

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/types"
)

func (e *Emitter) emitIf(id ast.NodeID, n *ast.Node) error {
	cond := n.Children[0]
	if err := e.emitNode(cond); err != nil {
		return err
	}
	then, els, end := label("if.then", id), label("if.else", id), label("if.end", id)
	fmt.Fprintf(&e.buf, "  br i1 %s, label %%%s, label %%%s\n", e.value(cond), then, els)

	fmt.Fprintf(&e.buf, "%s:\n", then)
	if err := e.emitNode(n.Children[1]); err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  br label %%%s\n", end)

	fmt.Fprintf(&e.buf, "%s:\n", els)
	if len(n.Children) > 2 {
		if err := e.emitNode(n.Children[2]); err != nil {
			return err
		}
	}
	fmt.Fprintf(&e.buf, "  br label %%%s\n", end)
	fmt.Fprintf(&e.buf, "%s:\n", end)
	return nil
}

func (e *Emitter) emitWhile(id ast.NodeID, n *ast.Node) error {
	cond, body, end := label("while.cond", id), label("while.body", id), label("while.end", id)
	fmt.Fprintf(&e.buf, "  br label %%%s\n", cond)
	fmt.Fprintf(&e.buf, "%s:\n", cond)
	if err := e.emitNode(n.Children[0]); err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  br i1 %s, label %%%s, label %%%s\n", e.value(n.Children[0]), body, end)
	fmt.Fprintf(&e.buf, "%s:\n", body)
	if err := e.emitNode(n.Children[1]); err != nil {
		return err
	}
	fmt.Fprintf(&e.buf, "  br label %%%s\n", cond)
	fmt.Fprintf(&e.buf, "%s:\n", end)
	return nil
}

func (e *Emitter) printf(format string, args ...string) {
	fmt.Fprintf(&e.buf, "  call i32 (ptr, ...) @printf(ptr @%s", format)
	for _, a := range args {
		fmt.Fprintf(&e.buf, ", %s", a)
	}
	e.buf.WriteString(")\n")
}

func (e *Emitter) emitWrite(id ast.NodeID, n *ast.Node) error {
	value := n.Children[0]
	data, _ := e.tree.Write(id)

	if e.tree.Kind(value) == ast.KindString {
		sc, ok := e.plan.String(value)
		if !ok {
			return fmt.Errorf("llvm: string %d was not hoisted", value)
		}
		e.printf("fmt.string", "ptr @"+sc.Symbol)
		return nil
	}

	if err := e.emitNode(value); err != nil {
		return err
	}
	switch t := e.typeOf(value); t {
	case types.Integer:
		format := "fmt.int"
		if data.Hex {
			format = "fmt.hex"
		}
		e.printf(format, "i32 "+e.value(value))
	case types.Double:
		e.printf("fmt.double", "double "+e.value(value))
	case types.Boolean:
		yes, no, end := label("write.true", id), label("write.false", id), label("write.end", id)
		fmt.Fprintf(&e.buf, "  br i1 %s, label %%%s, label %%%s\n", e.value(value), yes, no)
		fmt.Fprintf(&e.buf, "%s:\n", yes)
		e.printf("msg.true")
		fmt.Fprintf(&e.buf, "  br label %%%s\n", end)
		fmt.Fprintf(&e.buf, "%s:\n", no)
		e.printf("msg.false")
		fmt.Fprintf(&e.buf, "  br label %%%s\n", end)
		fmt.Fprintf(&e.buf, "%s:\n", end)
	default:
		return fmt.Errorf("llvm: cannot write %s", t)
	}
	return nil
}

func (e *Emitter) emitRead(id ast.NodeID, n *ast.Node) error {
	v, err := e.storage(id)
	if err != nil {
		return err
	}
	data, _ := e.tree.Read(id)
	var format string
	switch {
	case v.Type == types.Double:
		format = "scan.double"
	case v.Type == types.Integer && data.Hex:
		format = "scan.hex"
	case v.Type == types.Integer:
		format = "scan.int"
	default:
		return fmt.Errorf("llvm: cannot read into %s", v.Type)
	}
	fmt.Fprintf(&e.buf, "  call i32 (ptr, ...) @scanf(ptr @%s, ptr %%%s)\n", format, v.Storage)
	return nil
}
