package runtime

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// Pure navigation queries over the chart arena. All of them are O(depth)
// parent-link walks; the chart stores no child lists.

// isDescendantOf reports whether target is state itself or any ancestor of
// state.
func isDescendantOf(c *domain.Chart, state, target int) bool {
	for s := state; s != domain.None; s = c.Parent(s) {
		if s == target {
			return true
		}
	}
	return false
}

// childUnder walks node's parent chain and returns the direct child of
// parent on that path, or None if node is not under parent. With parent ==
// None it returns the root of node's tree.
func childUnder(c *domain.Chart, node, parent int) int {
	for s := node; s != domain.None; s = c.Parent(s) {
		if c.Parent(s) == parent {
			return s
		}
	}
	return domain.None
}

// lca returns the lowest common ancestor of two states that are not in an
// ancestor/descendant relationship, or None if their trees are disjoint.
func lca(c *domain.Chart, a, b int) int {
	for anc := c.Parent(a); anc != domain.None; anc = c.Parent(anc) {
		if isDescendantOf(c, b, anc) {
			return anc
		}
	}
	return domain.None
}

// topmostBetween returns the boundary state whose exit and entry hooks must
// not run during a transition from the current leaf to dest.
func topmostBetween(c *domain.Chart, current, dest int) (int, error) {
	if isDescendantOf(c, current, dest) {
		return dest, nil
	}
	if isDescendantOf(c, dest, current) {
		return current, nil
	}
	if anc := lca(c, current, dest); anc != domain.None {
		return anc, nil
	}
	return domain.None, domain.ErrDisjointHierarchy
}

// resolveInitialLeaf follows initial links from s down to the true entry
// target. Chart validation guarantees the chain terminates at a leaf.
func resolveInitialLeaf(c *domain.Chart, s int) int {
	for c.Initial(s) != domain.None {
		s = c.Initial(s)
	}
	return s
}
