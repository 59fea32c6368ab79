// Package interval provides an augmented overlap index over the real
// line. Items are inserted with a [min, max] extent; the tree answers
// "which items overlap this probe extent" without an exhaustive scan.
//
// The index is a binary tree rooted at the universal range
// [-Inf, +Inf]. Splitting introduces boundaries; red-black balancing
// keeps the height logarithmic in the number of boundaries. Every
// item is stored at the highest node(s) whose range its extent fully
// covers, never duplicated into descendants, so queries touch time
// proportional to the boundary structure plus matches.
//
// The tree is not safe for concurrent use; it is owned by one
// logical writer at a time.
package interval

import "math"

// Tree is an accelerated overlap index keyed by item extents.
// Item values must be comparable and unique within one tree.
type Tree[T comparable] struct {
	root    *node[T]
	entries map[T]*entry[T]
	queryID uint64
}

// entry is the per-item record. lastQuery suppresses duplicate
// callback invocations when an item is reachable via several visited
// nodes in one query.
type entry[T comparable] struct {
	value     T
	min, max  float64
	lastQuery uint64
}

// itemSet is the per-node item store.
type itemSet[T comparable] map[*entry[T]]struct{}

func (s itemSet[T]) add(e *entry[T])      { s[e] = struct{}{} }
func (s itemSet[T]) remove(e *entry[T])   { delete(s, e) }
func (s itemSet[T]) has(e *entry[T]) bool { _, ok := s[e]; return ok }

// node is one range of the real line. A node either is a leaf (no
// children, no split value) or has exactly two children dividing its
// range at split. Nodes are created by splitting and never merged.
type node[T comparable] struct {
	min, max float64
	split    float64

	parent      *node[T]
	left, right *node[T]
	red         bool

	items itemSet[T]
}

func (n *node[T]) isLeaf() bool { return n.left == nil }

// New creates an empty index spanning [-Inf, +Inf].
func New[T comparable]() *Tree[T] {
	return &Tree[T]{
		root: &node[T]{
			min:   math.Inf(-1),
			max:   math.Inf(1),
			items: itemSet[T]{},
		},
		entries: map[T]*entry[T]{},
	}
}

// Len returns the number of items currently in the index.
func (t *Tree[T]) Len() int {
	return len(t.entries)
}

// Split introduces value as a node boundary. It is a no-op when
// value already equals a boundary of the leaf containing it.
func (t *Tree[T]) Split(value float64) {
	n := t.root
	for !n.isLeaf() {
		if value == n.split {
			return
		}
		if value < n.split {
			n = n.left
		} else {
			n = n.right
		}
	}
	if value == n.min || value == n.max {
		return
	}

	// The leaf becomes an internal node with two fresh leaf
	// children; its item set still covers its unchanged range.
	n.split = value
	n.left = &node[T]{min: n.min, max: value, parent: n, items: itemSet[T]{}}
	n.right = &node[T]{min: value, max: n.max, parent: n, items: itemSet[T]{}}
	n.red = true
	t.insertFixup(n)
}

// Add inserts an item covering [min, max]. An item already present
// is removed first, so the registry never holds two extents for one
// value.
func (t *Tree[T]) Add(item T, min, max float64) {
	if old, ok := t.entries[item]; ok {
		t.removeEntry(old)
	}
	if max < min {
		min, max = max, min
	}
	if min == max {
		// A zero-width extent covers no node range. Widen it by one
		// ULP so point probes at the value still find the item.
		max = math.Nextafter(max, math.Inf(1))
	}
	// Align node boundaries with the item extent, then store the
	// item at every highest node its extent fully covers.
	t.Split(min)
	t.Split(max)
	e := &entry[T]{value: item, min: min, max: max}
	t.entries[item] = e
	t.place(t.root, e)
}

// place descends from n, storing e at every node fully covered by
// the item's extent and not descending further from there.
func (t *Tree[T]) place(n *node[T], e *entry[T]) {
	if n.min >= e.min && n.max <= e.max {
		n.items.add(e)
		return
	}
	if n.isLeaf() || n.max <= e.min || n.min >= e.max {
		return
	}
	t.place(n.left, e)
	t.place(n.right, e)
}

// Remove deletes an item from the index. It reports whether the item
// was present.
func (t *Tree[T]) Remove(item T) bool {
	e, ok := t.entries[item]
	if !ok {
		return false
	}
	t.removeEntry(e)
	return true
}

// removeEntry mirrors the placement traversal, removing the entry
// from every node where it was stored.
func (t *Tree[T]) removeEntry(e *entry[T]) {
	t.unplace(t.root, e)
	delete(t.entries, e.value)
}

func (t *Tree[T]) unplace(n *node[T], e *entry[T]) {
	if n.min >= e.min && n.max <= e.max {
		n.items.remove(e)
		return
	}
	if n.isLeaf() || n.max <= e.min || n.min >= e.max {
		return
	}
	t.unplace(n.left, e)
	t.unplace(n.right, e)
}

// Query invokes fn once per distinct item whose extent overlaps the
// probe extent [min, max]. fn returning false stops the query early.
func (t *Tree[T]) Query(min, max float64, fn func(item T) bool) {
	t.queryID++
	t.visit(t.root, min, max, fn)
}

// QueryPoint invokes fn once per distinct item whose extent contains
// the value.
func (t *Tree[T]) QueryPoint(value float64, fn func(item T) bool) {
	t.Query(value, value, fn)
}

// visit walks every node overlapping the probe, reporting each item
// at most once per query via the query-id tag. It returns false when
// the callback terminated the query.
func (t *Tree[T]) visit(n *node[T], min, max float64, fn func(item T) bool) bool {
	if n.max < min || n.min > max {
		return true
	}
	for e := range n.items {
		if e.lastQuery == t.queryID {
			continue
		}
		e.lastQuery = t.queryID
		if !fn(e.value) {
			return false
		}
	}
	if n.isLeaf() {
		return true
	}
	if !t.visit(n.left, min, max, fn) {
		return false
	}
	return t.visit(n.right, min, max, fn)
}

// -------------------------------------------------------------------
// Red-black balancing
// -------------------------------------------------------------------

// insertFixup restores the red-black invariants after a leaf split
// turned n into a red internal node: ascend while the parent is red,
// recoloring when the uncle is red and rotating when it is black.
func (t *Tree[T]) insertFixup(n *node[T]) {
	for n != t.root && n.parent.red {
		parent := n.parent
		gp := parent.parent
		if gp == nil {
			break
		}
		leftCase := parent == gp.left
		uncle := gp.right
		if !leftCase {
			uncle = gp.left
		}

		// Leaves are always black, so a plain color test covers them.
		if uncle.red {
			parent.red = false
			uncle.red = false
			gp.red = true
			n = gp
			continue
		}

		// Inner-child case: rotate the parent first so the final
		// rotation at the grandparent sees an outer child.
		inner := parent.right
		if !leftCase {
			inner = parent.left
		}
		if n == inner {
			t.rotate(parent, leftCase)
			n, parent = parent, n
		}
		parent.red = false
		gp.red = true
		t.rotate(gp, !leftCase)
	}
	t.root.red = false
}

// rotate rotates at n: left when left is true, right otherwise. The
// pivot child takes n's place and range; item sets are redistributed
// by redistributeItems so that every item stays at the highest node
// fully covered by its extent.
func (t *Tree[T]) rotate(n *node[T], left bool) {
	var pivot, alpha, beta, gamma *node[T]
	if left {
		pivot = n.right
		alpha, beta, gamma = n.left, pivot.left, pivot.right
	} else {
		pivot = n.left
		alpha, beta, gamma = pivot.left, pivot.right, n.right
	}

	// Relink. After the rotation the pivot spans n's old range and n
	// spans the two subtrees that merged under it.
	pivot.parent = n.parent
	switch {
	case n.parent == nil:
		t.root = pivot
	case n == n.parent.left:
		n.parent.left = pivot
	default:
		n.parent.right = pivot
	}
	n.parent = pivot
	if left {
		n.left, n.right = alpha, beta
		pivot.left, pivot.right = n, gamma
	} else {
		pivot.left, pivot.right = alpha, n
		n.left, n.right = beta, gamma
	}
	if left {
		alpha.parent, beta.parent = n, n
		gamma.parent = pivot
	} else {
		alpha.parent = pivot
		beta.parent, gamma.parent = n, n
	}

	// Recompute ranges and splits from the (unchanged) leaf extents.
	if left {
		n.min, n.max = alpha.min, beta.max
		n.split = alpha.max
		pivot.min, pivot.max = n.min, gamma.max
		pivot.split = n.max
	} else {
		n.min, n.max = beta.min, gamma.max
		n.split = beta.max
		pivot.min, pivot.max = alpha.min, n.max
		pivot.split = alpha.max
	}

	// Colors are left alone; insertFixup recolors around rotations.

	if left {
		redistributeItems(n.items, pivot.items, alpha.items, beta.items, gamma.items, n, pivot)
	} else {
		redistributeItems(n.items, pivot.items, gamma.items, beta.items, alpha.items, n, pivot)
	}
}

// redistributeItems restores the highest-covering-node invariant
// after a rotation, purely from the item sets involved and the new
// node ranges — coverage is never recomputed from the full item
// universe, so rotation cost is proportional to the affected items.
//
// In rotation-neutral terms: top held the whole rotated range and
// keeps doing so under its new root; mid held the child range that
// no longer exists, so its items sink into the two subtrees (near
// and far) it used to cover; and items stored in both subtrees that
// merged under the new inner node (outer and near) rise to it.
//
// For a left rotation the arguments are, in order: the old item set
// of the rotated node (top), the old set of its pivot child (mid),
// and the sets of the three grandchild subtrees left to right
// (outer, near, far); newInner and newTop are the nodes that end up
// holding the merged-subtree items and the whole-range items. A
// right rotation passes the mirrored order.
func redistributeItems[T comparable](topOld, midOld, outer, near, far itemSet[T], newInner, newTop *node[T]) {
	// Items that covered the whole rotated range keep covering it.
	top := make(itemSet[T], len(topOld))
	for e := range topOld {
		top.add(e)
	}

	// Items from the vanished child range now cover exactly the two
	// subtrees that range divided into.
	for e := range midOld {
		near.add(e)
		far.add(e)
	}
	clear(midOld)

	// Items present in both subtrees that merged under the new inner
	// node cover its whole range and move up.
	inner := itemSet[T]{}
	for e := range outer {
		if near.has(e) {
			inner.add(e)
		}
	}
	for e := range inner {
		outer.remove(e)
		near.remove(e)
	}

	newInner.items = inner
	newTop.items = top
}
