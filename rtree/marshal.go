// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"bufio"
	"io"
	"sort"
	"strconv"
)

// The persisted tree format is one line per internal node:
//
//	[flag, node_id, [[child_id, x_low, x_high, y_low, y_high], ...]]
//
// A flag of 0 means the line's children are polygon leaves encoded
// inline; 1 means the children reference internal nodes defined on
// earlier lines. Lines appear leaf-parent level first and root level
// last, so a child id is always defined before it is referenced, and
// the last line of the file defines the root.
//
// Coordinates are written as the shortest decimal representation that
// round-trips float64 exactly, so Marshal followed by Unmarshal
// reproduces every box bit for bit.

// Marshal serializes the tree to w in the persisted text format,
// returning the number of bytes written. Panics if w is nil.
func (t *Tree) Marshal(w io.Writer) (n int, err error) {
	if w == nil {
		textPanic("nil writer")
	}
	// Node ids are assigned monotonically level by level during bulk
	// load and Unmarshal preserves them, so ascending id order is
	// exactly the required bottom-up, children-before-parents line
	// order.
	ids := make([]int, 0, len(t.internal))
	for id := range t.internal {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var line []byte
	for _, id := range ids {
		line = appendNodeLine(line[:0], t.internal[id])
		m, err := w.Write(line)
		n += m
		if err != nil {
			return n, wrapErr("failed to write node line", err)
		}
	}
	return n, nil
}

func appendNodeLine(dst []byte, n *Node) []byte {
	dst = append(dst, '[')
	if n.ChildrenAreLeaves {
		dst = append(dst, '0')
	} else {
		dst = append(dst, '1')
	}
	dst = append(dst, ", "...)
	dst = strconv.AppendInt(dst, int64(n.ID), 10)
	dst = append(dst, ", ["...)
	for i, c := range n.Children {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = append(dst, '[')
		dst = strconv.AppendInt(dst, int64(c.ID), 10)
		for _, v := range [4]float64{c.Box.XMin, c.Box.XMax, c.Box.YMin, c.Box.YMax} {
			dst = append(dst, ", "...)
			dst = strconv.AppendFloat(dst, v, 'f', -1, 64)
		}
		dst = append(dst, ']')
	}
	dst = append(dst, "]]\n"...)
	return dst
}

// Unmarshal parses the persisted text format back into an in-memory
// tree. Child references are resolved against the nodes defined on
// earlier lines, failing with ErrMissingChild on a reference to an
// undefined node id, and every node's box is recomputed as the union
// of its children's boxes rather than trusted from the file. The node
// defined by the last line becomes the root. Returns ErrEmptyTree if
// the input contains no lines and ErrMalformedLine if a line does not
// parse. Panics if r is nil.
func Unmarshal(r io.Reader) (*Tree, error) {
	if r == nil {
		textPanic("nil reader")
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	internal := make(map[int]*Node)
	var root *Node
	var numLeaves int
	var lineNo int
	for sc.Scan() {
		lineNo++
		toks := scanNumbers(sc.Text())
		if len(toks) < 2 || (len(toks)-2)%5 != 0 {
			return nil, detailErr(ErrMalformedLine, "line %d: want flag, id and child 5-tuples, got %d numbers", lineNo, len(toks))
		}
		var leafChildren bool
		switch toks[0] {
		case "0":
			leafChildren = true
		case "1":
			leafChildren = false
		default:
			return nil, detailErr(ErrMalformedLine, "line %d: leaf flag %q is not 0 or 1", lineNo, toks[0])
		}
		id, err := strconv.Atoi(toks[1])
		if err != nil {
			return nil, detailErr(ErrMalformedLine, "line %d: node id %q", lineNo, toks[1])
		}
		if len(toks) == 2 {
			return nil, detailErr(ErrMalformedLine, "line %d: node %d has no children", lineNo, id)
		}

		n := &Node{ID: id, ChildrenAreLeaves: leafChildren}
		for i := 2; i < len(toks); i += 5 {
			childID, err := strconv.Atoi(toks[i])
			if err != nil {
				return nil, detailErr(ErrMalformedLine, "line %d: child id %q", lineNo, toks[i])
			}
			var coord [4]float64 // x_low, x_high, y_low, y_high
			for j := 0; j < 4; j++ {
				coord[j], err = strconv.ParseFloat(toks[i+1+j], 64)
				if err != nil {
					return nil, detailErr(ErrMalformedLine, "line %d: coordinate %q", lineNo, toks[i+1+j])
				}
			}
			var child *Node
			if leafChildren {
				child = &Node{
					ID:   childID,
					Box:  Box{XMin: coord[0], YMin: coord[2], XMax: coord[1], YMax: coord[3]},
					Leaf: true,
				}
				numLeaves++
			} else {
				var ok bool
				// The stored child rectangle is redundant here: the
				// child's box was already recomputed when its own line
				// was read.
				if child, ok = internal[childID]; !ok {
					return nil, detailErr(ErrMissingChild, "line %d: node %d references node %d", lineNo, id, childID)
				}
			}
			n.Children = append(n.Children, child)
		}
		n.recomputeBox()
		internal[n.ID] = n
		root = n
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr("failed to read tree", err)
	}
	if root == nil {
		return nil, ErrEmptyTree
	}
	return newTree(root, internal, numLeaves), nil
}

// scanNumbers extracts the numeric tokens from a node line, skipping
// the brackets, commas and whitespace between them. A token is a
// maximal run of digits, '-' and '.' characters; strconv decides later
// whether it is actually a number.
func scanNumbers(line string) []string {
	var toks []string
	start := -1
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '-' || c == '.' || ('0' <= c && c <= '9') {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			toks = append(toks, line[start:i])
			start = -1
		}
	}
	if start >= 0 {
		toks = append(toks, line[start:])
	}
	return toks
}
