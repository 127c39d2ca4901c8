// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geomidx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geomidx/geomidx/rtree"
)

// ReadRangeQueries reads a window query file: one query per line as
// four whitespace-separated floats, "x_low y_low x_high y_high".
func ReadRangeQueries(r io.Reader) ([]rtree.Box, error) {
	var queries []rtree.Box
	sc := bufio.NewScanner(r)
	var lineNo int
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		vals, err := parseFloats(line, 4)
		if err != nil {
			return nil, recordErr("range query", lineNo, line)
		}
		queries = append(queries, rtree.Box{XMin: vals[0], YMin: vals[1], XMax: vals[2], YMax: vals[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr("failed to read range queries", err)
	}
	return queries, nil
}

// ReadPointQueries reads a k-nearest-neighbor query file: one query
// point per line as two whitespace-separated floats, "x y".
func ReadPointQueries(r io.Reader) ([]rtree.Point, error) {
	var queries []rtree.Point
	sc := bufio.NewScanner(r)
	var lineNo int
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		vals, err := parseFloats(line, 2)
		if err != nil {
			return nil, recordErr("point query", lineNo, line)
		}
		queries = append(queries, rtree.Point{X: vals[0], Y: vals[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr("failed to read point queries", err)
	}
	return queries, nil
}

func parseFloats(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, ErrMalformedRecord
	}
	vals := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// RunRangeQueries executes a batch of window queries against the tree
// and writes one result line per query to w:
//
//	<query_index> (<result_count>): <id> <id> ...
//
// Result ids appear in tree traversal order. The exact byte layout,
// including the space before the parenthesis and the trailing space
// after each id, matches the historical query programs.
func RunRangeQueries(t *rtree.Tree, queries []rtree.Box, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, q := range queries {
		ids := t.Search(q)
		writeResultLine(bw, i, ids, " ")
	}
	if err := bw.Flush(); err != nil {
		return wrapErr("failed to write range query results", err)
	}
	return nil
}

// RunNearestQueries executes a batch of k-nearest-neighbor queries
// against the tree and writes one result line per query to w:
//
//	<query_index>(<result_count>): <id> <id> ...
//
// Result ids appear in ascending order of bounding-rectangle distance.
// Returns rtree.ErrInvalidK before running any query if k is not
// positive.
func RunNearestQueries(t *rtree.Tree, queries []rtree.Point, k int, w io.Writer) error {
	if k <= 0 {
		return fmt.Errorf("%w: got %d", rtree.ErrInvalidK, k)
	}
	bw := bufio.NewWriter(w)
	for i, q := range queries {
		ids, err := t.Nearest(q.X, q.Y, k)
		if err != nil {
			return err
		}
		writeResultLine(bw, i, ids, "")
	}
	if err := bw.Flush(); err != nil {
		return wrapErr("failed to write nearest query results", err)
	}
	return nil
}

func writeResultLine(bw *bufio.Writer, index int, ids []int, sep string) {
	bw.WriteString(strconv.Itoa(index))
	bw.WriteString(sep)
	bw.WriteByte('(')
	bw.WriteString(strconv.Itoa(len(ids)))
	bw.WriteString("): ")
	for _, id := range ids {
		bw.WriteString(strconv.Itoa(id))
		bw.WriteByte(' ')
	}
	bw.WriteByte('\n')
}
