package sema

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/source"
	"github.com/maciek-pioro/compiler/internal/types"
)

type validator struct {
	tree     *ast.Tree
	links    *Links
	typing   *Typing
	reporter diag.Reporter
	ok       bool
}

// Validate visits every node reachable from the root and reports every
// failed check. The result is false if any check failed.
func Validate(tree *ast.Tree, links *Links, typing *Typing, reporter diag.Reporter) bool {
	v := validator{tree: tree, links: links, typing: typing, reporter: reporter, ok: true}
	tree.PreOrder(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		v.check(id, n)
		return true
	})
	return v.ok
}

func (v *validator) pos(n *ast.Node) source.Pos {
	return source.AtLine(v.tree.File, n.Line)
}

func (v *validator) report(code diag.Code, n *ast.Node, format string, args ...any) {
	v.ok = false
	diag.ReportError(v.reporter, code, v.pos(n), fmt.Sprintf(format, args...)).Emit()
}

func (v *validator) check(id ast.NodeID, n *ast.Node) {
	switch n.Kind {
	case ast.KindWrapper:
		v.checkWrapper(id, n)
	case ast.KindDeclarationList:
		v.checkDeclarations(n)
	case ast.KindIdentifier, ast.KindAssign:
		v.checkDeclared(id, n)
	case ast.KindRead:
		v.checkRead(id, n)
	case ast.KindRelation:
		v.checkRelation(id, n)
	case ast.KindWrite:
		v.checkWrite(id, n)
	case ast.KindIf, ast.KindWhile:
		if cond := n.Children[0]; v.typing.Type(cond) != types.Boolean {
			v.report(diag.SemaNonBooleanCondition, n, "%s condition must be bool, found %s",
				conditionOwner(n.Kind), v.typing.Type(cond))
		}
	case ast.KindLiteral:
		v.checkLiteral(id, n)
	case ast.KindProgram, ast.KindBlock, ast.KindInstructionList, ast.KindVariable,
		ast.KindMath, ast.KindLogical, ast.KindBitwise, ast.KindUnary,
		ast.KindString, ast.KindReturn, ast.KindInvalid:
		// nothing local to check
	}
}

func conditionOwner(k ast.Kind) string {
	if k == ast.KindWhile {
		return "while"
	}
	return "if"
}

func (v *validator) checkWrapper(id ast.NodeID, n *ast.Node) {
	data, _ := v.tree.Wrapper(id)
	from := v.typing.Type(n.Children[0])
	to := v.typing.Type(id)
	if types.Allowed(from, to, data.Explicit) {
		return
	}
	if data.Explicit {
		v.report(diag.SemaIllegalConversion, n, "cannot cast %s to %s", from, to)
		return
	}
	if types.Classify(from, to) == types.ConvExplicitOnly {
		v.report(diag.SemaIllegalConversion, n, "cannot convert %s to %s implicitly; use an explicit (%s) cast", from, to, to)
		return
	}
	v.report(diag.SemaIllegalConversion, n, "cannot convert %s to %s", from, to)
}

func (v *validator) checkDeclarations(n *ast.Node) {
	first := make(map[string]*ast.Variable, len(n.Children))
	for _, ch := range n.Children {
		variable, _, ok := v.tree.Variable(ch)
		if !ok {
			continue
		}
		if prev, dup := first[variable.Name]; dup {
			v.ok = false
			diag.ReportError(v.reporter, diag.SemaDuplicateDeclaration,
				source.AtLine(v.tree.File, variable.Line),
				fmt.Sprintf("variable '%s' already declared on line %d", variable.Name, prev.Line)).
				WithNote(source.AtLine(v.tree.File, prev.Line), fmt.Sprintf("'%s' first declared here", variable.Name)).
				Emit()
			continue
		}
		first[variable.Name] = variable
	}
}

func (v *validator) checkDeclared(id ast.NodeID, n *ast.Node) (*ast.Variable, bool) {
	name, _ := v.tree.Name(id)
	variable, ok := v.links.Lookup(id, name)
	if !ok {
		v.report(diag.SemaUndeclaredIdentifier, n, "undeclared identifier '%s'", name)
	}
	return variable, ok
}

func (v *validator) checkRead(id ast.NodeID, n *ast.Node) {
	variable, ok := v.checkDeclared(id, n)
	if !ok {
		return
	}
	data, _ := v.tree.Read(id)
	if variable.Type != types.Integer && variable.Type != types.Double {
		v.report(diag.SemaInvalidReadTarget, n, "cannot read into '%s' of type %s", variable.Name, variable.Type)
		return
	}
	if data.Hex && variable.Type != types.Integer {
		v.report(diag.SemaInvalidHexTarget, n, "hex read needs an int variable, '%s' is %s", variable.Name, variable.Type)
	}
}

func (v *validator) checkRelation(id ast.NodeID, n *ast.Node) {
	left := v.typing.Type(v.tree.Unwrap(n.Children[0]))
	right := v.typing.Type(v.tree.Unwrap(n.Children[1]))
	if left != types.Boolean || right != types.Boolean {
		return
	}
	if op, _ := v.tree.Op(id); !op.IsEquality() {
		v.report(diag.SemaInvalidBooleanOperator, n, "operator '%s' is not defined for bool operands", op)
	}
}

func (v *validator) checkWrite(id ast.NodeID, n *ast.Node) {
	data, _ := v.tree.Write(id)
	if !data.Hex {
		return
	}
	if t := v.typing.Type(n.Children[0]); t != types.Integer {
		v.report(diag.SemaInvalidHexWriteTarget, n, "hex write needs an int operand, found %s", t)
	}
}

func (v *validator) checkLiteral(id ast.NodeID, n *ast.Node) {
	lit, _ := v.tree.Literal(id)
	if lit.Type != types.Integer {
		return
	}
	if _, err := lit.Int(); err != nil {
		v.report(diag.SemaIntLiteralOutOfRange, n, "integer literal %s does not fit in 32 bits", lit.Text)
	}
}
