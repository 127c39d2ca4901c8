// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyGenFunc adapts a plain function to the KeyGenerator interface.
type keyGenFunc func([]Point) ([]string, error)

func (f keyGenFunc) Keys(centers []Point) ([]string, error) {
	return f(centers)
}

// rankKeys is a deterministic test generator: keys encode each
// center's rank under (X, Y) ordering, so sorted entry order is fully
// predictable.
func rankKeys(centers []Point) ([]string, error) {
	idx := make([]int, len(centers))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := centers[idx[a]], centers[idx[b]]
		if ca.X != cb.X {
			return ca.X < cb.X
		}
		return ca.Y < cb.Y
	})
	keys := make([]string, len(centers))
	for rank, i := range idx {
		keys[i] = fmt.Sprintf("%09d", rank)
	}
	return keys, nil
}

// randomEntries produces n entries with ids 0..n-1 and small random
// boxes scattered over a 1000x1000 extent.
func randomEntries(n int, seed int64) []Entry {
	r := rand.New(rand.NewSource(seed))
	entries := make([]Entry, n)
	for i := range entries {
		x := r.Float64() * 1000
		y := r.Float64() * 1000
		entries[i] = Entry{
			ID:  i,
			Box: Box{XMin: x, YMin: y, XMax: x + 1 + r.Float64()*5, YMax: y + 1 + r.Float64()*5},
		}
	}
	return entries
}

// requireUnionInvariant walks the subtree under n and requires every
// internal node's box to equal the exact union of its children's
// boxes.
func requireUnionInvariant(t *testing.T, n *Node) {
	if n.Leaf {
		return
	}
	require.NotEmpty(t, n.Children)
	union := EmptyBox
	for _, c := range n.Children {
		union.Expand(&c.Box)
		requireUnionInvariant(t, c)
	}
	require.Equal(t, union, n.Box, "node %d box is not the union of its children", n.ID)
}

// requireFanout requires every internal node except the root to have
// between min and max children.
func requireFanout(t *testing.T, tree *Tree, min, max int) {
	var walk func(n *Node, isRoot bool)
	walk = func(n *Node, isRoot bool) {
		if n.Leaf {
			return
		}
		if !isRoot {
			require.GreaterOrEqual(t, len(n.Children), min, "node %d underfull", n.ID)
		}
		require.LessOrEqual(t, len(n.Children), max, "node %d overfull", n.ID)
		for _, c := range n.Children {
			walk(c, false)
		}
	}
	walk(tree.Root(), true)
}

func collectLeafIDs(n *Node, out *[]int) {
	if n.Leaf {
		*out = append(*out, n.ID)
		return
	}
	for _, c := range n.Children {
		collectLeafIDs(c, out)
	}
}

// requirePartition requires the leaves reachable from the root to be
// exactly the ids 0..n-1, each exactly once.
func requirePartition(t *testing.T, tree *Tree, n int) {
	var ids []int
	collectLeafIDs(tree.Root(), &ids)
	require.Len(t, ids, n)
	sort.Ints(ids)
	for i, id := range ids {
		require.Equal(t, i, id)
	}
}

func TestComputeMBRs(t *testing.T) {
	coords := []Point{{0, 0}, {1, 2}, {2, 1}, {10, 10}, {12, 14}, {11, 9}}

	t.Run("Success", func(t *testing.T) {
		entries, err := ComputeMBRs(coords, []Ref{
			{ID: 7, Start: 0, End: 2},
			{ID: 8, Start: 3, End: 5},
			{ID: 9, Start: 2, End: 2},
		})

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, Entry{ID: 7, Box: Box{0, 0, 2, 2}}, entries[0])
		assert.Equal(t, Entry{ID: 8, Box: Box{10, 9, 12, 14}}, entries[1])
		assert.Equal(t, Entry{ID: 9, Box: Box{2, 1, 2, 1}}, entries[2])
	})

	t.Run("Error", func(t *testing.T) {
		testCases := []struct {
			name     string
			refs     []Ref
			expected error
		}{
			{"Empty", nil, ErrEmptyDataset},
			{"EndPastCoords", []Ref{{ID: 0, Start: 0, End: 6}}, ErrRefRange},
			{"FarPastCoords", []Ref{{ID: 0, Start: 0, End: 1000}}, ErrRefRange},
			{"NegativeStart", []Ref{{ID: 0, Start: -1, End: 2}}, ErrRefRange},
			{"StartAfterEnd", []Ref{{ID: 0, Start: 3, End: 2}}, ErrRefRange},
			{"LaterRefBad", []Ref{{ID: 0, Start: 0, End: 2}, {ID: 1, Start: 5, End: 6}}, ErrRefRange},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				entries, err := ComputeMBRs(coords, testCase.refs)

				assert.Nil(t, entries)
				assert.ErrorIs(t, err, testCase.expected)
			})
		}
	})
}

func TestBuild(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		t.Run("EmptyDataset", func(t *testing.T) {
			tree, err := Build(nil, keyGenFunc(rankKeys))

			assert.Nil(t, tree)
			assert.ErrorIs(t, err, ErrEmptyDataset)
		})

		t.Run("KeyCount", func(t *testing.T) {
			short := keyGenFunc(func(centers []Point) ([]string, error) {
				return make([]string, len(centers)-1), nil
			})

			tree, err := Build(randomEntries(10, 1), short)

			assert.Nil(t, tree)
			assert.ErrorIs(t, err, ErrKeyCount)
		})

		t.Run("GeneratorFailure", func(t *testing.T) {
			boom := fmt.Errorf("boom")
			failing := keyGenFunc(func([]Point) ([]string, error) {
				return nil, boom
			})

			tree, err := Build(randomEntries(10, 1), failing)

			assert.Nil(t, tree)
			assert.ErrorIs(t, err, boom)
		})
	})

	t.Run("Panic", func(t *testing.T) {
		t.Run("NilKeyGenerator", func(t *testing.T) {
			assert.PanicsWithValue(t, "rtree: nil key generator", func() {
				_, _ = Build(randomEntries(1, 1), nil)
			})
		})

		t.Run("BadFanout", func(t *testing.T) {
			assert.PanicsWithValue(t, "rtree: invalid fanout bounds", func() {
				_, _ = build(randomEntries(1, 1), keyGenFunc(rankKeys), 5, 4)
			})
		})
	})

	t.Run("SingleEntry", func(t *testing.T) {
		tree, err := Build(randomEntries(1, 2), keyGenFunc(rankKeys))

		require.NoError(t, err)
		root := tree.Root()
		assert.False(t, root.Leaf)
		assert.True(t, root.ChildrenAreLeaves)
		require.Len(t, root.Children, 1)
		assert.True(t, root.Children[0].Leaf)
		assert.Equal(t, 1, tree.NumLeaves())
		assert.Equal(t, 1, tree.Height())
		assert.Equal(t, root.Children[0].Box, tree.Bounds())
	})

	t.Run("Invariants", func(t *testing.T) {
		for _, n := range []int{5, 20, 21, 199, 500} {
			t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
				tree, err := Build(randomEntries(n, int64(n)), keyGenFunc(rankKeys))

				require.NoError(t, err)
				assert.Equal(t, n, tree.NumLeaves())
				requireUnionInvariant(t, tree.Root())
				requireFanout(t, tree, MinFanout, MaxFanout)
				requirePartition(t, tree, n)
			})
		}
	})

	t.Run("MonotonicIDs", func(t *testing.T) {
		tree, err := Build(randomEntries(500, 3), keyGenFunc(rankKeys))

		require.NoError(t, err)
		// Node ids are assigned 0..len(internal)-1 with no gaps, and a
		// child internal node always has a lower id than its parent.
		for id, n := range tree.internal {
			require.Equal(t, id, n.ID)
			if !n.ChildrenAreLeaves {
				for _, c := range n.Children {
					require.Less(t, c.ID, n.ID)
				}
			}
		}
		sizes := tree.LevelSizes()
		total := 0
		for _, s := range sizes {
			total += s
		}
		require.Equal(t, total, len(tree.internal))
	})
}

// TestBuild_Rebalance drives the minimum-occupancy redistribution with
// small fanout bounds so the borrow path runs on several levels, then
// checks that the mutated donor nodes still satisfy the union
// invariant all the way up.
func TestBuild_Rebalance(t *testing.T) {
	for _, n := range []int{5, 9, 13, 17, 65, 81, 257} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tree, err := build(randomEntries(n, int64(n)), keyGenFunc(rankKeys), 2, 4)

			require.NoError(t, err)
			requireUnionInvariant(t, tree.Root())
			requireFanout(t, tree, 2, 4)
			requirePartition(t, tree, n)
		})
	}

	t.Run("BorrowedChildrenMoveToFront", func(t *testing.T) {
		// 17 entries with max fanout 4: four full groups and a
		// remainder of one, which borrows one leaf from the end of the
		// fourth group's child list.
		entries := make([]Entry, 17)
		for i := range entries {
			x := float64(i)
			entries[i] = Entry{ID: i, Box: Box{x, 0, x + 0.5, 1}}
		}

		tree, err := build(entries, keyGenFunc(rankKeys), 2, 4)

		require.NoError(t, err)
		leafParents := make([]*Node, 0)
		for _, n := range tree.internal {
			if n.ChildrenAreLeaves {
				leafParents = append(leafParents, n)
			}
		}
		sort.Slice(leafParents, func(i, j int) bool { return leafParents[i].ID < leafParents[j].ID })
		require.Len(t, leafParents, 5)
		donor, last := leafParents[3], leafParents[4]
		// rankKeys sorts by X, so leaves land in id order: the donor
		// kept 12..14 and leaf 15 moved in front of leaf 16.
		assert.Equal(t, []int{12, 13, 14}, childIDs(donor))
		assert.Equal(t, []int{15, 16}, childIDs(last))
		assert.Equal(t, Box{12, 0, 14.5, 1}, donor.Box)
		assert.Equal(t, Box{15, 0, 16.5, 1}, last.Box)
	})
}

func childIDs(n *Node) []int {
	ids := make([]int, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	entries := randomEntries(50, 4)
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)

	_, err := Build(entries, keyGenFunc(rankKeys))

	require.NoError(t, err)
	assert.Equal(t, snapshot, entries)
}
