// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Search returns the ids of all polygon leaves whose bounding
// rectangle intersects the window w. Only bounding rectangles are
// consulted, matching the granularity of the persisted tree; no
// polygon-level geometry exists to refine against.
//
// Results appear in tree traversal order, which is deterministic for a
// fixed tree and window. Each leaf has exactly one parent, so no id
// can appear twice.
func (t *Tree) Search(w Box) []int {
	r := make([]int, 0)
	searchNode(t.root, &w, &r)
	return r
}

// searchNode is the recursive descent: subtrees whose boxes miss the
// window are pruned whole. Recursion depth is bounded by the tree
// height, which is logarithmic in the leaf count.
func searchNode(n *Node, w *Box, r *[]int) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if !c.Box.Intersects(w) {
			continue
		}
		if c.Leaf {
			*r = append(*r, c.ID)
		} else {
			searchNode(c, w, r)
		}
	}
}
