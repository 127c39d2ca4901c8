// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geomidx

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when a dataset or query file line
// fails to parse into the expected fields.
var ErrMalformedRecord = textErr("malformed record")

const packageName = "geomidx: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

// recordErr reports a malformed line, keeping ErrMalformedRecord
// reachable through errors.Is so callers can distinguish bad input
// data from I/O failure.
func recordErr(kind string, line int, text string) error {
	return fmt.Errorf("%w: %s line %d: %q", ErrMalformedRecord, kind, line, text)
}
