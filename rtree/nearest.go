// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "container/heap"

// A distItem pairs a node with the lower bound on the distance from
// the query point to anything inside the node's box.
type distItem struct {
	node *Node
	dist float64
}

// distQueue is a min-heap of distItem implementing heap.Interface.
// Ordering is by ascending distance; ties break by ascending node id,
// then leaf before internal. Leaf and internal ids are separate
// namespaces, so the final rule is what makes the order total and the
// search reproducible across platforms.
type distQueue []distItem

func (q distQueue) Len() int { return len(q) }
func (q distQueue) Less(i, j int) bool {
	a, b := &q[i], &q[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.node.ID != b.node.ID {
		return a.node.ID < b.node.ID
	}
	return a.node.Leaf && !b.node.Leaf
}
func (q distQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x interface{}) { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// Nearest returns the ids of the k polygon leaves nearest to the point
// (x, y), in ascending order of bounding-rectangle distance. If the
// tree holds fewer than k leaves, all of them are returned and the
// error is nil. Returns ErrInvalidK if k is not positive.
//
// Proximity is measured by MinDist on the leaf's bounding rectangle,
// not by the original polygon's boundary; ranking by box distance is
// the defined semantics of this index, which stores no polygon
// geometry. The search is best-first: nodes wait in a minimum-priority
// queue keyed by MinDist, and because MinDist is a lower bound, a leaf
// popped from the queue is closer (in box distance) than anything
// still unexpanded.
func (t *Tree) Nearest(x, y float64, k int) ([]int, error) {
	if k <= 0 {
		return nil, detailErr(ErrInvalidK, "got %d", k)
	}
	r := make([]int, 0, k)
	if t.root == nil {
		return r, nil
	}
	q := distQueue{{node: t.root, dist: t.root.Box.MinDist(x, y)}}
	for len(q) > 0 && len(r) < k {
		it := heap.Pop(&q).(distItem)
		if it.node.Leaf {
			r = append(r, it.node.ID)
			continue
		}
		for _, c := range it.node.Children {
			heap.Push(&q, distItem{node: c, dist: c.Box.MinDist(x, y)})
		}
	}
	return r, nil
}
