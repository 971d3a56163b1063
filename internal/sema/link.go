package sema

import (
	"github.com/maciek-pioro/compiler/internal/ast"
)

// Scope is the name table of one Program or Block node. When a name is
// declared twice in the same list the first declaration stays bound.
type Scope struct {
	Node ast.NodeID
	Vars map[string]ast.VarID
}

// Links is the output of the linking pass: a parent-index array and the
// scope tables, both keyed by node id. The tree itself is never mutated.
type Links struct {
	tree   *ast.Tree
	parent []ast.NodeID
	scopes map[ast.NodeID]*Scope
}

// Link records parents for every node and builds one scope per Program and
// Block. It must run after the tree is complete.
func Link(tree *ast.Tree) *Links {
	n := tree.Len()
	l := &Links{
		tree:   tree,
		parent: make([]ast.NodeID, n+1),
		scopes: make(map[ast.NodeID]*Scope),
	}
	for i := uint32(1); i <= n; i++ {
		id := ast.NodeID(i)
		node := tree.Get(id)
		for _, ch := range node.Children {
			if int(ch) < len(l.parent) {
				l.parent[ch] = id
			}
		}
		if node.Kind.IsScope() {
			l.scopes[id] = l.buildScope(id)
		}
	}
	return l
}

func (l *Links) buildScope(id ast.NodeID) *Scope {
	sc := &Scope{Node: id, Vars: make(map[string]ast.VarID)}
	decls := l.tree.Child(id, 0)
	for _, v := range l.tree.Children(decls) {
		variable, vid, ok := l.tree.Variable(v)
		if !ok {
			continue
		}
		if _, dup := sc.Vars[variable.Name]; !dup {
			sc.Vars[variable.Name] = vid
		}
	}
	return sc
}

// Parent returns the owner of id, NoNodeID for the root and unattached nodes.
func (l *Links) Parent(id ast.NodeID) ast.NodeID {
	if int(id) >= len(l.parent) {
		return ast.NoNodeID
	}
	return l.parent[id]
}

// Scope returns the scope table introduced by a Program or Block node.
func (l *Links) Scope(id ast.NodeID) *Scope {
	return l.scopes[id]
}

// EnclosingScope returns the nearest Program or Block that contains id,
// including id itself.
func (l *Links) EnclosingScope(id ast.NodeID) ast.NodeID {
	for cur := id; cur.IsValid(); cur = l.Parent(cur) {
		if l.tree.Kind(cur).IsScope() {
			return cur
		}
	}
	return ast.NoNodeID
}

// Lookup resolves name as seen from node id: the nearest scope first, then
// outward along the parent chain.
func (l *Links) Lookup(id ast.NodeID, name string) (*ast.Variable, bool) {
	for sc := l.EnclosingScope(id); sc.IsValid(); sc = l.EnclosingScope(l.Parent(sc)) {
		if vid, ok := l.scopes[sc].Vars[name]; ok {
			return l.tree.Var(vid), true
		}
	}
	return nil, false
}
