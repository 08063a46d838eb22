// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - One flat buffer per matrix, offset i*cols + j, so a row is a contiguous
//     slice: CIFTI maps (one row per component or tract) are read, centred and
//     dotted without strided access.
//   - At/Set/Row return errors on bad indices instead of panicking.
//   - The NaN/Inf guard is decided once, at construction.
//
// AI-Hints:
//   - Decoders hand over whole buffers through NewDenseFrom.
//   - Imaging data carries NaN for masked samples: load it with
//     WithNoValidateNaNInf.
//
// Complexity quicksheet:
//   - NewDense/NewDenseFrom: O(r*c); At/Set: O(1); Row: O(c); Clone: O(r*c).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxApply = "Apply"
	ctxRow   = "Row"
	ctxFrom  = "NewDenseFrom"
)

// denseErrorf formats "Dense.<method>(row,col): <err>".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
type Dense struct {
	r, c           int
	data           []float64 // len == r*c
	validateNaNInf bool      // reject NaN/Inf in Set/Apply when true
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns a rows×cols zero matrix with the default numeric policy.
// Errors: ErrInvalidDimensions when either side is not positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// newDenseWithPolicy allocates a zero matrix with an explicit NaN/Inf guard.
// Statistics kernels pass false: their outputs may hold NaN by contract.
func newDenseWithPolicy(rows, cols int, validateNaNInf bool) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.validateNaNInf = validateNaNInf

	return m, nil
}

// NewDenseFrom copies a row-major buffer into a new rows×cols Dense.
// Implementation:
//   - Stage 1: check the shape and len(data) == rows*cols.
//   - Stage 2: resolve the numeric policy from opts.
//   - Stage 3: with the guard on, fail on the first non-finite value.
//   - Stage 4: copy.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape, ErrNaNInf (policy).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len=%d want %d×%d: %w", ctxFrom, len(data), rows, cols, ErrBadShape)
	}
	o := gatherOptions(opts...)

	if o.validateNaNInf {
		for idx, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNaNInf)
			}
		}
	}

	return &Dense{r: rows, c: cols, data: append([]float64(nil), data...), validateNaNInf: o.validateNaNInf}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows(), Cols()).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

func (m *Dense) inBounds(row, col int) bool {
	return row >= 0 && row < m.r && col >= 0 && col < m.c
}

// At returns the value at (row, col).
// Errors: ErrOutOfRange, wrapped with the coordinates.
func (m *Dense) At(row, col int) (float64, error) {
	if !m.inBounds(row, col) {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set stores v at (row, col).
// Errors: ErrOutOfRange; ErrNaNInf when the guard is on and v is not finite.
func (m *Dense) Set(row, col int, v float64) error {
	if !m.inBounds(row, col) {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// Clone returns an independent copy with the same numeric policy.
func (m *Dense) Clone() Matrix {
	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           append([]float64(nil), m.data...),
		validateNaNInf: m.validateNaNInf,
	}
}

// String prints one bracketed, comma-separated line per row ("%g" values).
// Meant for diagnostics on small matrices.
func (m *Dense) String() string {
	var b strings.Builder
	buf := make([]byte, 0, 24)
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j, v := range m.data[i*m.c : (i+1)*m.c] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
		}
		b.WriteString("]\n")
	}

	return b.String()
}

// Do calls f for every element in row-major order until f returns false.
// Used for read-only scans (value range, rendering) without copying.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for idx, v := range m.data {
		if !f(idx/m.c, idx%m.c, v) {
			return
		}
	}
}

// Apply replaces every element with f(i,j,v) in row-major order.
// With the guard on, the first non-finite result aborts with ErrNaNInf;
// elements before it keep their new values.
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var nv float64
	for idx, v := range m.data {
		nv = f(idx/m.c, idx%m.c, v)
		if m.validateNaNInf && isNonFinite(nv) {
			return denseErrorf(ctxApply, idx/m.c, idx%m.c, ErrNaNInf)
		}
		m.data[idx] = nv
	}

	return nil
}
