// SPDX-License-Identifier: MIT

package export

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCSV indicates a record that is not a list of numbers,
	// or a record whose field count differs from the first one.
	ErrMalformedCSV = errors.New("export: malformed csv")

	// ErrEmpty indicates an input with no rows or no columns.
	ErrEmpty = errors.New("export: empty matrix")

	// ErrLabelCount indicates label slices that do not match the matrix shape.
	ErrLabelCount = errors.New("export: label count does not match matrix shape")
)

// Operation tags.
const (
	opWriteCSV     = "WriteCSV"
	opReadCSV      = "ReadCSV"
	opBestMatches  = "BestMatches"
	opWriteSummary = "WriteSummary"
	opReadSummary  = "ReadSummary"
)

func exportErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
