// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// A KeyGenerator maps an ordered list of points to one sortable string
// key per point, in the same order, such that spatial proximity is
// approximately preserved by lexicographic key order (for example a
// Z-order or Hilbert curve encoding).
//
// The bulk loader treats the generator as an opaque collaborator: it
// sorts entries by plain string comparison and performs no
// interpretation of key semantics. Keys are only ever compared against
// other keys produced by the same Keys call, so a generator is free to
// derive its encoding domain from the batch it is given.
type KeyGenerator interface {
	Keys(centers []Point) ([]string, error)
}
