// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"strconv"
	"strings"
)

// A Point is a position in the two-dimensional coordinate plane.
type Point struct {
	X float64
	Y float64
}

// A Box is a minimum bounding rectangle: the smallest axis-aligned
// rectangle enclosing a shape or set of shapes. A valid Box satisfies
// XMin <= XMax and YMin <= YMax; EmptyBox is the one deliberate
// exception.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is an empty Box. Because its minimums are positive infinity
// and its maximums are negative infinity, it is the identity value for
// Expand: any box expanded onto EmptyBox yields that box.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// Width returns the width of the box.
func (b *Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the height of the box.
func (b *Box) Height() float64 {
	return b.YMax - b.YMin
}

// Center returns the center point of the box.
func (b *Box) Center() Point {
	return Point{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

// Expand grows b to the minimal box covering both b and c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// ExpandXY grows b to the minimal box covering both b and the point
// (x, y).
func (b *Box) ExpandXY(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Intersects returns true unless b and o are disjoint on at least one
// axis. Boxes that merely share a boundary point do intersect.
func (b *Box) Intersects(o *Box) bool {
	if b.XMax < o.XMin || b.XMin > o.XMax {
		return false
	}
	if b.YMax < o.YMin || b.YMin > o.YMax {
		return false
	}
	return true
}

// MinDist returns the Euclidean distance from the point (x, y) to the
// nearest point of b, or zero if (x, y) lies inside b or on its
// boundary. It is a valid lower bound on the distance from (x, y) to
// anything contained in b, which is what the k-nearest-neighbor search
// relies on.
func (b *Box) MinDist(x, y float64) float64 {
	var dx float64
	if x < b.XMin {
		dx = b.XMin - x
	} else if x > b.XMax {
		dx = x - b.XMax
	}
	var dy float64
	if y < b.YMin {
		dy = b.YMin - y
	} else if y > b.YMax {
		dy = y - b.YMax
	}
	return math.Sqrt(dx*dx + dy*dy)
}

// String returns a compact text representation of the box.
func (b Box) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strconv.FormatFloat(b.XMin, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.YMin, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.XMax, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.YMax, 'g', -1, 64))
	sb.WriteByte(']')
	return sb.String()
}
