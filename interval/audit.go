package interval

import (
	"errors"
	"fmt"
)

// Audit verifies every structural invariant of the tree and reports
// the first violation found. It is O(entries * nodes) and intended
// for tests and debugging, not production paths.
//
// Checked invariants:
//   - parent links and child ranges are consistent (left child ends
//     at the split, right child starts there, ranges tile the parent)
//   - the root is black and no red node has a red parent
//   - every root-to-leaf path crosses the same number of black nodes
//   - every stored item sits at nodes fully covered by its extent,
//     at the highest such node, exactly once per covering leaf
func (t *Tree[T]) Audit() error {
	if t.root == nil {
		return errors.New("interval: nil root")
	}
	if t.root.parent != nil {
		return errors.New("interval: root has a parent")
	}
	if t.root.red {
		return errors.New("interval: root is red")
	}
	if _, err := auditNode(t.root); err != nil {
		return err
	}
	for _, e := range t.entries {
		if err := auditItem(t.root, e, false); err != nil {
			return err
		}
	}
	return nil
}

// auditNode checks structure and red-black shape below n, returning
// the black height of the subtree.
func auditNode[T comparable](n *node[T]) (int, error) {
	if n.isLeaf() {
		if n.right != nil {
			return 0, fmt.Errorf("interval: half-leaf node [%g,%g]", n.min, n.max)
		}
		if n.red {
			return 0, fmt.Errorf("interval: red leaf [%g,%g]", n.min, n.max)
		}
		return 1, nil
	}
	if n.left == nil || n.right == nil {
		return 0, fmt.Errorf("interval: internal node [%g,%g] missing a child", n.min, n.max)
	}
	if n.left.parent != n || n.right.parent != n {
		return 0, fmt.Errorf("interval: broken parent link under [%g,%g]", n.min, n.max)
	}
	if n.red && (n.left.red || n.right.red) {
		return 0, fmt.Errorf("interval: red node [%g,%g] has a red child", n.min, n.max)
	}
	if n.left.min != n.min || n.left.max != n.split ||
		n.right.min != n.split || n.right.max != n.max {
		return 0, fmt.Errorf("interval: children of [%g,%g] split %g do not tile it",
			n.min, n.max, n.split)
	}
	lh, err := auditNode(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := auditNode(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("interval: black height mismatch under [%g,%g]: %d vs %d",
			n.min, n.max, lh, rh)
	}
	if n.red {
		return lh, nil
	}
	return lh + 1, nil
}

// auditItem walks the whole tree for one entry, verifying that each
// leaf inside the entry's extent has exactly one holder on its path
// to the root and that every holder is a highest covered node.
func auditItem[T comparable](n *node[T], e *entry[T], coveredAbove bool) error {
	holds := n.items.has(e)
	if holds {
		if coveredAbove {
			return fmt.Errorf("interval: item %v held twice on one path at [%g,%g]",
				e.value, n.min, n.max)
		}
		if n.min < e.min || n.max > e.max {
			return fmt.Errorf("interval: item %v [%g,%g] held at uncovered node [%g,%g]",
				e.value, e.min, e.max, n.min, n.max)
		}
		if p := n.parent; p != nil && p.min >= e.min && p.max <= e.max {
			return fmt.Errorf("interval: item %v [%g,%g] held below highest node at [%g,%g]",
				e.value, e.min, e.max, n.min, n.max)
		}
	}
	covered := coveredAbove || holds
	if n.isLeaf() {
		inside := n.min >= e.min && n.max <= e.max
		if inside && !covered {
			return fmt.Errorf("interval: item %v [%g,%g] missing over leaf [%g,%g]",
				e.value, e.min, e.max, n.min, n.max)
		}
		return nil
	}
	if err := auditItem(n.left, e, covered); err != nil {
		return err
	}
	return auditItem(n.right, e, covered)
}
