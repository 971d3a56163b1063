// Package testkit holds structural checks shared by tests and fuzzers.
package testkit

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"github.com/maciek-pioro/compiler/internal/ast"
	"github.com/maciek-pioro/compiler/internal/sema"
)

// CheckTreeInvariants verifies a fully built tree against its links:
//  1. the root is a Program with no parent
//  2. every node is reachable from the root exactly once
//  3. children are allocated before their parent
//  4. each slot is "tmp_<id>"
//  5. links.Parent agrees with the child lists
//  6. every Program and Block has a scope table
func CheckTreeInvariants(tree *ast.Tree, links *sema.Links) error {
	if tree == nil || links == nil {
		return fmt.Errorf("nil tree or links")
	}
	if kind := tree.Kind(tree.Root); kind != ast.KindProgram {
		return fmt.Errorf("root %d is %s, want Program", tree.Root, kind)
	}
	if p := links.Parent(tree.Root); p.IsValid() {
		return fmt.Errorf("root has parent %d", p)
	}

	total, err := safecast.Conv[int](tree.Len())
	if err != nil {
		return fmt.Errorf("node count overflow: %w", err)
	}
	seen := make([]bool, total+1)
	var walkErr error
	tree.PreOrder(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if walkErr != nil {
			return false
		}
		if seen[id] {
			walkErr = fmt.Errorf("node %d reached twice", id)
			return false
		}
		seen[id] = true
		if want := "tmp_" + strconv.FormatUint(uint64(id), 10); n.Slot != want {
			walkErr = fmt.Errorf("node %d slot %q, want %q", id, n.Slot, want)
			return false
		}
		if n.Kind.IsScope() && links.Scope(id) == nil {
			walkErr = fmt.Errorf("%s %d has no scope", n.Kind, id)
			return false
		}
		for _, ch := range n.Children {
			if !ch.IsValid() || ch >= id {
				walkErr = fmt.Errorf("%s %d owns child %d allocated after it", n.Kind, id, ch)
				return false
			}
			if p := links.Parent(ch); p != id {
				walkErr = fmt.Errorf("child %d of %d is linked to parent %d", ch, id, p)
				return false
			}
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	for i := 1; i <= total; i++ {
		if !seen[i] {
			return fmt.Errorf("node %d (%s) is not reachable from the root", i, tree.Kind(ast.NodeID(i)))
		}
	}
	return nil
}
