package ast

// PreOrder visits the subtree rooted at root parent-first, children left to
// right. Returning false from visit skips the node's children. The walk is
// iterative so deep trees cannot overflow the stack.
func (t *Tree) PreOrder(root NodeID, visit func(id NodeID, n *Node) bool) {
	if !root.IsValid() {
		return
	}
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Get(id)
		if n == nil || !visit(id, n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Collect returns, in pre-order, every node of the given kind below root.
func (t *Tree) Collect(root NodeID, kind Kind) []NodeID {
	var out []NodeID
	t.PreOrder(root, func(id NodeID, n *Node) bool {
		if n.Kind == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}
