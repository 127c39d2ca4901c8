// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geomidx reads the flat-file dataset and query formats
// surrounding the rtree index: coordinate and offset files consumed by
// the bulk loader, and range/k-nearest-neighbor query batches with
// their line-per-query result encoding.
package geomidx
