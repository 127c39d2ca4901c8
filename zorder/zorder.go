// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package zorder generates Z-order (Morton curve) spatial sort keys.
// It is the production implementation of the key generator boundary
// consumed by the rtree bulk loader: points close together on the
// plane receive keys close together in lexicographic string order.
package zorder

import (
	"math"

	"github.com/geomidx/geomidx/rtree"
)

const (
	// Order is the order of the Z-order curve used by Generator. Grid
	// X- and Y-coordinates range from 0 to 2^Order-1.
	Order = 16
	// gridMax is the maximum grid X- or Y-coordinate.
	gridMax = (1 << Order) - 1
	// keyLen is the number of base-4 digits in a key: one digit per
	// pair of interleaved bits.
	keyLen = Order
)

// Generator computes Morton keys over the extent of each batch of
// centers it is given. It implements rtree.KeyGenerator.
//
// Keys from different batches are not comparable: the quantization
// domain is the batch's own bounding box. That is exactly the contract
// the bulk loader needs, since it sorts each dataset in a single
// batch.
type Generator struct{}

// Keys returns one fixed-width base-4 key string per center, in input
// order. Lexicographic order of the keys equals numeric order of the
// underlying Morton indices. A degenerate extent axis (all centers
// sharing one X or one Y) quantizes to zero on that axis.
func (Generator) Keys(centers []rtree.Point) ([]string, error) {
	keys := make([]string, len(centers))
	if len(centers) == 0 {
		return keys, nil
	}
	extent := rtree.EmptyBox
	for i := range centers {
		extent.ExpandXY(centers[i].X, centers[i].Y)
	}
	w, h := extent.Width(), extent.Height()
	for i := range centers {
		var gx, gy uint32
		if w != 0 {
			gx = uint32(math.Floor(gridMax * (centers[i].X - extent.XMin) / w))
		}
		if h != 0 {
			gy = uint32(math.Floor(gridMax * (centers[i].Y - extent.YMin) / h))
		}
		keys[i] = formatKey(interleave(gx, gy))
	}
	return keys, nil
}

// interleave builds the Morton index of a grid coordinate: bits of y
// occupy the even positions and bits of x the odd ones.
func interleave(x, y uint32) uint32 {
	return part1By1(x)<<1 | part1By1(y)
}

// part1By1 spreads the low 16 bits of v over the even bit positions of
// a 32-bit word.
func part1By1(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | v<<8) & 0x00FF00FF
	v = (v | v<<4) & 0x0F0F0F0F
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// formatKey renders a Morton index as a fixed-width string of base-4
// digits, most significant digit first. Fixed width is what makes
// string order agree with numeric order.
func formatKey(m uint32) string {
	var b [keyLen]byte
	for i := keyLen - 1; i >= 0; i-- {
		b[i] = '0' + byte(m&3)
		m >>= 2
	}
	return string(b[:])
}
