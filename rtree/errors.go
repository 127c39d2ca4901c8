// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when a bulk load is attempted with
	// no polygon records at all.
	ErrEmptyDataset = textErr("empty dataset")
	// ErrEmptyTree is returned by Unmarshal when the input contains no
	// node lines.
	ErrEmptyTree = textErr("empty tree")
	// ErrRefRange is returned when a Ref addresses vertex indices
	// outside the coordinate sequence.
	ErrRefRange = textErr("ref outside coordinate range")
	// ErrKeyCount is returned when the injected key generator yields a
	// different number of keys than entries supplied.
	ErrKeyCount = textErr("key generator returned wrong key count")
	// ErrMissingChild is returned by Unmarshal when a node line
	// references a child node id that no earlier line defined.
	ErrMissingChild = textErr("reference to undefined node id")
	// ErrMalformedLine is returned by Unmarshal when a line does not
	// parse into a node record.
	ErrMalformedLine = textErr("malformed node line")
	// ErrInvalidK is returned by Nearest when k is not positive.
	ErrInvalidK = textErr("k must be positive")
)

const packageName = "rtree: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

// detailErr attaches formatted detail to one of the package's sentinel
// errors, keeping the sentinel reachable through errors.Is.
func detailErr(sentinel error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, a...)...)
}

func textPanic(text string) {
	panic(packageName + text)
}
