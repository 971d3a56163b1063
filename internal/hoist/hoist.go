// Package hoist computes what code generation has to place ahead of the
// instruction stream: module-level string constants and the stack slot of
// every declared variable.
package hoist

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/ast"
)

// StringConst is one module-level constant holding a string literal.
type StringConst struct {
	Node ast.NodeID
	// Symbol is the global name without the leading '@'.
	Symbol string
	// Bytes is the collapsed literal, terminated by NUL.
	Bytes []byte
}

// Decl is one stack slot allocated in the entry block.
type Decl struct {
	Var     ast.VarID
	Node    ast.NodeID
	Storage string
}

// Plan lists hoisted items in the order they appear in a pre-order walk.
type Plan struct {
	Strings      []StringConst
	Declarations []Decl

	byNode map[ast.NodeID]int
}

// Build walks the tree once and collects every string literal and every
// variable declaration, at any nesting depth.
func Build(tree *ast.Tree) *Plan {
	p := &Plan{byNode: make(map[ast.NodeID]int)}
	tree.PreOrder(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		switch n.Kind {
		case ast.KindString:
			data, _ := tree.StringLit(id)
			p.byNode[id] = len(p.Strings)
			p.Strings = append(p.Strings, StringConst{
				Node:   id,
				Symbol: fmt.Sprintf("str.%d", id),
				Bytes:  Collapse(data.Raw),
			})
		case ast.KindVariable:
			v, vid, ok := tree.Variable(id)
			if ok {
				p.Declarations = append(p.Declarations, Decl{Var: vid, Node: id, Storage: v.Storage})
			}
		}
		return true
	})
	return p
}

// String returns the constant hoisted for a StringLiteral node.
func (p *Plan) String(id ast.NodeID) (StringConst, bool) {
	i, ok := p.byNode[id]
	if !ok {
		return StringConst{}, false
	}
	return p.Strings[i], true
}

// Collapse turns the escape sequences \n \t \r \" \\ into the bytes they
// denote and appends the terminating NUL. Unknown escapes keep the
// backslash; the lexer has already rejected them.
func Collapse(raw string) []byte {
	out := make([]byte, 0, len(raw)+1)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			out = append(out, c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, '\\', raw[i])
		}
	}
	return append(out, 0)
}
