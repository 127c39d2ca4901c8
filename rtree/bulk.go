// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "sort"

const (
	// MaxFanout is the maximum number of children per internal node.
	MaxFanout = 20
	// MinFanout is the minimum number of children per internal node,
	// root excepted. The bulk loader's redistribution step enforces it
	// whenever a donor sibling exists.
	MinFanout = 8
)

// A Ref identifies one polygon's vertex range within a coordinate
// sequence. Start and End are inclusive indices. Refs arrive from
// untrusted input, so ComputeMBRs validates them against the
// coordinate sequence before reading.
type Ref struct {
	ID    int
	Start int
	End   int
}

// An Entry is a transient bulk-load record: one polygon id paired with
// its minimum bounding rectangle and, once assigned, its spatial sort
// key. Entries exist only between ComputeMBRs and Build; they are not
// part of the finished tree.
type Entry struct {
	ID  int
	Box Box

	key string
}

// ComputeMBRs computes the minimum bounding rectangle of each polygon
// named by refs over the shared coordinate sequence. It returns
// ErrEmptyDataset if refs is empty and ErrRefRange if any ref
// addresses indices outside coords.
func ComputeMBRs(coords []Point, refs []Ref) ([]Entry, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyDataset
	}
	entries := make([]Entry, len(refs))
	for i := range refs {
		r := &refs[i]
		if r.Start < 0 || r.End >= len(coords) || r.Start > r.End {
			return nil, detailErr(ErrRefRange, "ref %d spans [%d, %d] over %d coordinates", r.ID, r.Start, r.End, len(coords))
		}
		b := EmptyBox
		for j := r.Start; j <= r.End; j++ {
			b.ExpandXY(coords[j].X, coords[j].Y)
		}
		entries[i] = Entry{ID: r.ID, Box: b}
	}
	return entries, nil
}

// byKey is an implementation of sort.Interface which lets us use the
// reflection-free sort functions instead of sort.Slice.
type byKey []Entry

func (s byKey) Len() int           { return len(s) }
func (s byKey) Less(i, j int) bool { return s[i].key < s[j].key }
func (s byKey) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Build bulk-loads an R-tree from the given entries using MinFanout
// and MaxFanout occupancy bounds. The entries are sorted by the keys
// obtained from kg, packed into leaf-parent nodes, and upper levels
// are built bottom-up until a single root remains. Build does not
// modify the entries slice. Panics if kg is nil.
//
// Build returns ErrEmptyDataset if entries is empty, ErrKeyCount if kg
// yields a key count different from the entry count, and wraps any
// error kg itself reports.
func Build(entries []Entry, kg KeyGenerator) (*Tree, error) {
	return build(entries, kg, MinFanout, MaxFanout)
}

func build(entries []Entry, kg KeyGenerator, minFanout, maxFanout int) (*Tree, error) {
	if kg == nil {
		textPanic("nil key generator")
	}
	if minFanout < 1 || maxFanout < 2 || minFanout > maxFanout {
		textPanic("invalid fanout bounds")
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDataset
	}

	centers := make([]Point, len(entries))
	for i := range entries {
		centers[i] = entries[i].Box.Center()
	}
	keys, err := kg.Keys(centers)
	if err != nil {
		return nil, wrapErr("key generation failed", err)
	}
	if len(keys) != len(entries) {
		return nil, detailErr(ErrKeyCount, "%d keys for %d entries", len(keys), len(entries))
	}

	// Sort a copy so the caller's slice is left alone. sort.Stable
	// keeps builds reproducible when distinct entries share a key.
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		sorted[i].key = keys[i]
	}
	sort.Stable(byKey(sorted))

	level := make([]*Node, len(sorted))
	for i := range sorted {
		level[i] = &Node{ID: sorted[i].ID, Box: sorted[i].Box, Leaf: true}
	}

	internal := make(map[int]*Node)
	var nextID int
	childrenAreLeaves := true
	for {
		level = packLevel(level, &nextID, childrenAreLeaves, minFanout, maxFanout, internal)
		childrenAreLeaves = false
		if len(level) == 1 {
			break
		}
	}
	return newTree(level[0], internal, len(sorted)), nil
}

// packLevel groups one finished level of nodes into parents of at most
// maxFanout children each, in order. If the trailing remainder group
// ends up below minFanout and a full sibling exists, children are
// moved one at a time from the end of the last full group's child list
// to the front of the remainder group, with both groups' boxes
// restored after every move, until the remainder reaches minFanout or
// the donor runs out. Node ids are taken from nextID, which increases
// monotonically across all levels of a build.
func packLevel(nodes []*Node, nextID *int, childrenAreLeaves bool, minFanout, maxFanout int, internal map[int]*Node) []*Node {
	numFull := len(nodes) / maxFanout
	parents := make([]*Node, 0, numFull+1)
	for i := 0; i < numFull; i++ {
		p := &Node{ID: *nextID, Box: EmptyBox, ChildrenAreLeaves: childrenAreLeaves}
		*nextID++
		for _, c := range nodes[i*maxFanout : (i+1)*maxFanout] {
			p.Children = append(p.Children, c)
			p.Box.Expand(&c.Box)
		}
		internal[p.ID] = p
		parents = append(parents, p)
	}

	if rem := nodes[numFull*maxFanout:]; len(rem) > 0 {
		p := &Node{ID: *nextID, Box: EmptyBox, ChildrenAreLeaves: childrenAreLeaves}
		*nextID++
		for _, c := range rem {
			p.Children = append(p.Children, c)
			p.Box.Expand(&c.Box)
		}
		if len(parents) > 0 {
			donor := parents[len(parents)-1]
			for len(p.Children) < minFanout && len(donor.Children) > 0 {
				c := donor.Children[len(donor.Children)-1]
				donor.Children = donor.Children[:len(donor.Children)-1]
				p.Children = append([]*Node{c}, p.Children...)
				p.Box.Expand(&c.Box)
				donor.recomputeBox()
			}
		}
		internal[p.ID] = p
		parents = append(parents, p)
	}
	return parents
}
