// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Kernels return (possibly wrapped) sentinels from this file; callers match
// them with errors.Is. Only option constructors panic.

package matrix

import "errors"

// Messages carry the "matrix: " prefix. Context is added by the operation
// wrappers (matrixErrorf, denseErrorf) as "<Op>: <sentinel>".
//
// Check order: nil -> shape/index -> dimension mismatch -> numeric policy.

var (
	// ErrBadShape is returned when a supplied buffer does not match rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Mul where a.Cols != b.Rows, or two row sets of different width.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set, Apply, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)
