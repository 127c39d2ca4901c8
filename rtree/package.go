// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree provides a bulk-loaded R-tree spatial index over
// polygon bounding rectangles, together with its persisted text
// representation and two read-only query engines: axis-aligned window
// search and best-first k-nearest-neighbor search.
//
// The tree is built once from a complete dataset, optionally written
// to and re-read from its line-per-node text format, and then queried
// many times. It is never mutated after construction, so a single
// Tree may be shared freely between readers.
package rtree
