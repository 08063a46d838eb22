// SPDX-License-Identifier: MIT
// Package: cifti
//
// errors.go - sentinel errors for the NIfTI/CIFTI decoder.
//
// Error policy:
//   - Only sentinel variables are exposed. Callers test with errors.Is.
//   - Context (file path, field name, offsets) is added by wrapping with %w.
//   - Messages are prefixed with "cifti: " for grep-ability.

package cifti

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic indicates the stream is neither a NIfTI-1 nor a NIfTI-2 file
	// (sizeof_hdr or magic string did not match in either byte order).
	ErrBadMagic = errors.New("cifti: bad magic")

	// ErrTruncated indicates the stream ended before the header, an
	// extension, or the data block was complete.
	ErrTruncated = errors.New("cifti: truncated data")

	// ErrUnsupportedDatatype indicates a NIfTI datatype code with no
	// real-valued decoding (complex, RGB, unknown codes).
	ErrUnsupportedDatatype = errors.New("cifti: unsupported datatype")

	// ErrBadDimensions indicates an invalid dim[] array: rank outside 1..7,
	// a non-positive extent, or a CIFTI file whose extents do not describe a matrix.
	ErrBadDimensions = errors.New("cifti: bad dimensions")

	// ErrBadExtension indicates a malformed extension block or CIFTI XML payload.
	ErrBadExtension = errors.New("cifti: bad extension")
)

// ciftiErrorf tags err with the decoding stage, preserving the sentinel via %w.
// Call only when err != nil.
func ciftiErrorf(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
