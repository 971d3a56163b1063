package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/sema"
	"github.com/maciek-pioro/compiler/internal/types"
)

// ASTNodeOutput is one node of the JSON tree dump.
type ASTNodeOutput struct {
	ID       uint32          `json:"id"`
	Kind     string          `json:"kind"`
	Line     uint32          `json:"line"`
	Type     string          `json:"type,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// describe renders the payload of a node, e.g. `x: int (var_3)` or `"+"`.
func describe(tree *ast.Tree, id ast.NodeID, n *ast.Node) string {
	switch n.Kind {
	case ast.KindLiteral:
		if lit, ok := tree.Literal(id); ok {
			return lit.Text
		}
	case ast.KindVariable:
		if v, _, ok := tree.Variable(id); ok {
			return fmt.Sprintf("%s: %s (%s)", v.Name, v.Type, v.Storage)
		}
	case ast.KindIdentifier, ast.KindAssign:
		if name, ok := tree.Name(id); ok {
			return name
		}
	case ast.KindMath, ast.KindRelation, ast.KindLogical, ast.KindBitwise, ast.KindUnary:
		if op, ok := tree.Op(id); ok {
			return fmt.Sprintf("%q", op.String())
		}
	case ast.KindWrapper:
		if w, ok := tree.Wrapper(id); ok && w.Explicit {
			return "(" + w.Target.String() + ")"
		}
		return "implicit"
	case ast.KindWrite:
		if wr, ok := tree.Write(id); ok && wr.Hex {
			return "hex"
		}
	case ast.KindRead:
		if rd, ok := tree.Read(id); ok {
			if rd.Hex {
				return rd.Name + " hex"
			}
			return rd.Name
		}
	case ast.KindString:
		if s, ok := tree.StringLit(id); ok {
			return `"` + s.Raw + `"`
		}
	case ast.KindInvalid, ast.KindProgram, ast.KindBlock, ast.KindDeclarationList,
		ast.KindInstructionList, ast.KindIf, ast.KindWhile, ast.KindReturn:
	}
	return ""
}

func nodeLabel(tree *ast.Tree, typing *sema.Typing, id ast.NodeID, n *ast.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s#%d", n.Kind, id)
	if text := describe(tree, id, n); text != "" {
		b.WriteString(" " + text)
	}
	if typing != nil {
		if ty := typing.Type(id); ty != types.None {
			b.WriteString(" : " + ty.String())
		}
	}
	fmt.Fprintf(&b, " (line %d)", n.Line)
	return b.String()
}

// FormatTreePretty prints the tree with box-drawing connectors. typing may be
// nil when the program did not parse.
func FormatTreePretty(w io.Writer, tree *ast.Tree, typing *sema.Typing) error {
	if tree == nil || !tree.Root.IsValid() {
		_, err := io.WriteString(w, "<empty>\n")
		return err
	}
	type frame struct {
		id     ast.NodeID
		prefix string
		last   bool
		root   bool
	}
	var b strings.Builder
	stack := []frame{{id: tree.Root, root: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := tree.Get(f.id)
		if n == nil {
			continue
		}
		childPrefix := f.prefix
		switch {
		case f.root:
		case f.last:
			b.WriteString(f.prefix + "└─ ")
			childPrefix += "   "
		default:
			b.WriteString(f.prefix + "├─ ")
			childPrefix += "│  "
		}
		b.WriteString(nodeLabel(tree, typing, f.id, n))
		b.WriteByte('\n')
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				id:     n.Children[i],
				prefix: childPrefix,
				last:   i == len(n.Children)-1,
			})
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func buildNodeJSON(tree *ast.Tree, typing *sema.Typing, id ast.NodeID) ASTNodeOutput {
	n := tree.Get(id)
	if n == nil {
		return ASTNodeOutput{ID: uint32(id), Kind: ast.KindInvalid.String()}
	}
	out := ASTNodeOutput{
		ID:   uint32(id),
		Kind: n.Kind.String(),
		Line: n.Line,
		Text: describe(tree, id, n),
	}
	if typing != nil {
		if ty := typing.Type(id); ty != types.None {
			out.Type = ty.String()
		}
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, buildNodeJSON(tree, typing, child))
	}
	return out
}

// FormatTreeJSON writes the tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, tree *ast.Tree, typing *sema.Typing) error {
	if tree == nil || !tree.Root.IsValid() {
		_, err := io.WriteString(w, "null\n")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildNodeJSON(tree, typing, tree.Root))
}
