// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geomidx

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/geomidx/geomidx/rtree"
)

// ReadCoords reads a coordinate file: one vertex per line as two
// comma-separated floats, "x,y". The vertex order is significant —
// offset records address it by index.
func ReadCoords(r io.Reader) ([]rtree.Point, error) {
	var points []rtree.Point
	sc := bufio.NewScanner(r)
	var lineNo int
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		xs, ys, ok := strings.Cut(line, ",")
		if !ok {
			return nil, recordErr("coords", lineNo, line)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if errX != nil || errY != nil {
			return nil, recordErr("coords", lineNo, line)
		}
		points = append(points, rtree.Point{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr("failed to read coords", err)
	}
	return points, nil
}

// ReadRefs reads an offset file: one polygon per line as three
// comma-separated integers, "id,start,end", where start and end are an
// inclusive vertex index range into the coordinate sequence. The range
// is not validated here; rtree.ComputeMBRs checks it against the
// actual coordinates.
func ReadRefs(r io.Reader) ([]rtree.Ref, error) {
	var refs []rtree.Ref
	sc := bufio.NewScanner(r)
	var lineNo int
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, recordErr("offsets", lineNo, line)
		}
		var vals [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, recordErr("offsets", lineNo, line)
			}
			vals[i] = v
		}
		refs = append(refs, rtree.Ref{ID: vals[0], Start: vals[1], End: vals[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, wrapErr("failed to read offsets", err)
	}
	return refs, nil
}
