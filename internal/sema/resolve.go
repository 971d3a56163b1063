package sema

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/types"
)

// placeholder is the type given to names that do not resolve, so the pass
// stays total. Validation reports the name itself.
const placeholder = types.Integer

// Typing is the side table produced by type resolution.
type Typing struct {
	types   []types.Type
	operand []types.Type
	// Unresolved lists Identifier, Assign and Read nodes whose name was not found.
	Unresolved []ast.NodeID
}

// Type returns the resolved type of id (types.None for statements).
func (ty *Typing) Type(id ast.NodeID) types.Type {
	if int(id) >= len(ty.types) {
		return types.None
	}
	return ty.types[id]
}

// Operand returns the common operand type chosen for an operator node. It
// selects between integer and floating instructions.
func (ty *Typing) Operand(id ast.NodeID) types.Type {
	if int(id) >= len(ty.operand) {
		return types.None
	}
	return ty.operand[id]
}

type resolver struct {
	tree  *ast.Tree
	links *Links
	out   *Typing
}

// Resolve computes the type of every node reachable from the root.
// Expected types flow top-down into implicit wrappers.
func Resolve(tree *ast.Tree, links *Links) *Typing {
	n := tree.Len() + 1
	r := resolver{
		tree:  tree,
		links: links,
		out: &Typing{
			types:   make([]types.Type, n),
			operand: make([]types.Type, n),
		},
	}
	r.resolve(tree.Root, types.None)
	return r.out
}

func (r *resolver) set(id ast.NodeID, t types.Type) types.Type {
	if prev := r.out.types[id]; prev != types.None && prev != t {
		panic(fmt.Sprintf("sema: node %d resolved twice (%s, then %s)", id, prev, t))
	}
	r.out.types[id] = t
	return t
}

func (r *resolver) lookup(id ast.NodeID) (types.Type, bool) {
	name, _ := r.tree.Name(id)
	v, ok := r.links.Lookup(id, name)
	if !ok {
		r.out.Unresolved = append(r.out.Unresolved, id)
		return placeholder, false
	}
	return v.Type, true
}

// resolve returns the type of id. expected is types.None when the parent
// imposes nothing.
func (r *resolver) resolve(id ast.NodeID, expected types.Type) types.Type {
	n := r.tree.Get(id)
	if n == nil {
		return types.None
	}
	if t := r.out.types[id]; t != types.None && n.Kind != ast.KindWrapper {
		return t
	}

	switch n.Kind {
	case ast.KindProgram, ast.KindBlock, ast.KindDeclarationList, ast.KindInstructionList,
		ast.KindIf, ast.KindWhile, ast.KindWrite:
		for _, ch := range n.Children {
			r.resolve(ch, types.None)
		}
		return types.None

	case ast.KindReturn:
		return types.None

	case ast.KindVariable:
		v, _, _ := r.tree.Variable(id)
		return r.set(id, v.Type)

	case ast.KindLiteral:
		lit, _ := r.tree.Literal(id)
		return r.set(id, lit.Type)

	case ast.KindString:
		return r.set(id, types.String)

	case ast.KindIdentifier, ast.KindRead:
		t, _ := r.lookup(id)
		return r.set(id, t)

	case ast.KindAssign:
		t, _ := r.lookup(id)
		r.set(id, t)
		r.resolve(n.Children[0], t)
		return t

	case ast.KindMath:
		return r.binary(id, n, types.MathSpec)
	case ast.KindRelation:
		return r.binary(id, n, types.RelationSpec)
	case ast.KindLogical:
		return r.binary(id, n, types.LogicalSpec)
	case ast.KindBitwise:
		return r.binary(id, n, types.BitwiseSpec)

	case ast.KindUnary:
		w := n.Children[0]
		natural := r.resolve(r.tree.Unwrap(w), types.None)
		op, _ := r.tree.Op(id)
		var t types.Type
		switch op {
		case ast.OpBitNot:
			t = types.Integer
		case ast.OpNot:
			t = types.Boolean
		default:
			t = types.Arithmetic(natural, natural)
		}
		r.out.operand[id] = t
		r.resolve(w, t)
		return r.set(id, t)

	case ast.KindWrapper:
		return r.wrapper(id, n, expected)

	case ast.KindInvalid:
		return types.None
	}
	panic(fmt.Sprintf("sema: unhandled node kind %s", n.Kind))
}

func (r *resolver) binary(id ast.NodeID, n *ast.Node, spec types.OperandSpec) types.Type {
	lw, rw := n.Children[0], n.Children[1]
	left := r.resolve(r.tree.Unwrap(lw), types.None)
	right := r.resolve(r.tree.Unwrap(rw), types.None)
	common := spec.Operand(left, right)
	r.out.operand[id] = common
	r.resolve(lw, common)
	r.resolve(rw, common)
	return r.set(id, spec.ResultOf(common))
}

func (r *resolver) wrapper(id ast.NodeID, n *ast.Node, expected types.Type) types.Type {
	natural := r.resolve(n.Children[0], types.None)
	data, _ := r.tree.Wrapper(id)
	if data.Explicit {
		return r.set(id, data.Target)
	}
	if expected == types.None {
		if prev := r.out.types[id]; prev != types.None {
			return prev
		}
		return r.set(id, natural)
	}
	return r.set(id, expected)
}
