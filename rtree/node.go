// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "fmt"

// A Node is one vertex of the R-tree node graph. The Leaf flag
// discriminates the two variants:
//
//   - A leaf node stands for one original polygon. ID is the polygon
//     id from the input dataset, Box is the polygon's minimum bounding
//     rectangle, and Children is nil.
//   - An internal node groups an ordered sequence of child nodes. ID
//     is a node id assigned during bulk load, and Box is always the
//     exact union of the children's boxes. ChildrenAreLeaves records
//     whether the children are polygon leaves or further internal
//     nodes.
//
// Leaf ids and internal node ids are separate namespaces; the same
// integer may legitimately identify both a polygon and an internal
// node.
type Node struct {
	// ID identifies the node within its variant's namespace.
	ID int
	// Box is the node's minimum bounding rectangle.
	Box Box
	// Leaf is true for polygon leaves.
	Leaf bool
	// Children is the ordered child sequence of an internal node. It
	// is nil for leaves.
	Children []*Node
	// ChildrenAreLeaves is true on internal nodes whose children are
	// polygon leaves (the leaf-parent level).
	ChildrenAreLeaves bool
}

// recomputeBox restores the union invariant after a change to the
// node's child membership.
func (n *Node) recomputeBox() {
	n.Box = EmptyBox
	for _, c := range n.Children {
		n.Box.Expand(&c.Box)
	}
}

// A Tree is a bulk-loaded R-tree. It exclusively owns its node graph:
// the graph is acyclic, every node has exactly one parent, and nothing
// mutates it after Build or Unmarshal returns, so a Tree is safe for
// any number of concurrent readers.
type Tree struct {
	root *Node
	// internal indexes internal nodes by node id. It doubles as the
	// arena that owns every internal node; leaves are owned by their
	// parent's Children slice.
	internal  map[int]*Node
	numLeaves int
}

func newTree(root *Node, internal map[int]*Node, numLeaves int) *Tree {
	return &Tree{root: root, internal: internal, numLeaves: numLeaves}
}

// Root returns the root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Bounds returns the bounding box around all polygons indexed by the
// tree.
func (t *Tree) Bounds() Box {
	if t.root == nil {
		return EmptyBox
	}
	return t.root.Box
}

// NumLeaves returns the number of polygon leaves in the tree.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// Height returns the number of internal levels in the tree. A tree
// whose root is the leaf-parent level has height 1.
func (t *Tree) Height() int {
	var h int
	for n := t.root; n != nil && !n.Leaf; n = n.Children[0] {
		h++
		if n.ChildrenAreLeaves {
			break
		}
	}
	return h
}

// LevelSizes returns the number of internal nodes on each level of the
// tree, leaf-parent level first and root level last.
func (t *Tree) LevelSizes() []int {
	var sizes []int
	if t.root == nil || t.root.Leaf {
		return sizes
	}
	frontier := []*Node{t.root}
	for {
		sizes = append(sizes, len(frontier))
		if frontier[0].ChildrenAreLeaves {
			break
		}
		var next []*Node
		for _, n := range frontier {
			next = append(next, n.Children...)
		}
		frontier = next
	}
	for i, j := 0, len(sizes)-1; i < j; i, j = i+1, j-1 {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	}
	return sizes
}

// String returns a summary description of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{Bounds:%s,NumLeaves:%d,Height:%d}", t.Bounds(), t.numLeaves, t.Height())
}
