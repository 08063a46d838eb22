// SPDX-License-Identifier: MIT
// Package matrix - products and transposition.
//
// Purpose:
//   - Mul for the general a × b product.
//   - MulTransB for a × bᵀ, the Gram-style product behind row correlation:
//     each output cell is the dot product of one row of a with one row of b,
//     so both operands are walked along their contiguous rows.
//   - Transpose for callers that need bᵀ materialised.
//
// Notes:
//   - Outputs are allocated with the NaN/Inf policy off; a NaN operand shows
//     up in every cell it contributes to instead of aborting a Set.

package matrix

import "fmt"

// ZeroSum is the initial value of every dot-product accumulator.
const ZeroSum = 0.0

const (
	opMul       = "Mul"
	opMulTransB = "MulTransB"
	opTranspose = "Transpose"
)

// matrixErrorf tags err with the failing operation. Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// atErrorf reports a failed At inside a generic fallback loop.
func atErrorf(tag string, i, j int, err error) error {
	return matrixErrorf(tag, fmt.Errorf("At(%d,%d): %w", i, j, err))
}

// Mul returns a × b as a new Dense.
// Implementation:
//   - Stage 1: ValidateMulCompatible; allocate a.Rows × b.Cols.
//   - Stage 2: *Dense pair → i→k→j over the flat buffers; otherwise At with i→j→k.
//
// Zero terms are not skipped, so 0 × NaN stays NaN.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseWithPolicy(rows, cols, false)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var out, left []float64
		for i := 0; i < rows; i++ {
			out = res.data[i*cols : (i+1)*cols]
			left = da.data[i*inner : (i+1)*inner]
			for k, av := range left {
				for j, bv := range db.data[k*cols : (k+1)*cols] {
					out[j] += av * bv
				}
			}
		}
		return res, nil
	}

	var av, bv, sum float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum = ZeroSum
			for k := 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, atErrorf(opMul, i, k, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, atErrorf(opMul, k, j, err)
				}
				sum += av * bv
			}
			res.data[i*cols+j] = sum
		}
	}

	return res, nil
}

// MulTransB returns a × bᵀ without materialising bᵀ.
// Both operands must have the same column count; the result is
// a.Rows × b.Rows with cell (i,j) = Σ_k a[i,k]·b[j,k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (column counts differ).
//
// Complexity:
//   - Time O(ra*rb*c), Space O(ra*rb).
func MulTransB(a, b Matrix) (Matrix, error) {
	if err := ValidateSameCols(a, b); err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}

	ra, rb, n := a.Rows(), b.Rows(), a.Cols()
	res, err := newDenseWithPolicy(ra, rb, false)
	if err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}

	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var x, y []float64
		var sum float64
		for i := 0; i < ra; i++ {
			x = da.data[i*n : (i+1)*n]
			for j := 0; j < rb; j++ {
				y = db.data[j*n : (j+1)*n]
				sum = ZeroSum
				for k, xv := range x {
					sum += xv * y[k]
				}
				res.data[i*rb+j] = sum
			}
		}
		return res, nil
	}

	var av, bv, sum float64
	for i := 0; i < ra; i++ {
		for j := 0; j < rb; j++ {
			sum = ZeroSum
			for k := 0; k < n; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, atErrorf(opMulTransB, i, k, err)
				}
				if bv, err = b.At(j, k); err != nil {
					return nil, atErrorf(opMulTransB, j, k, err)
				}
				sum += av * bv
			}
			res.data[i*rb+j] = sum
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new Dense.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseWithPolicy(cols, rows, false)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	if dm, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			for j, v := range dm.data[i*cols : (i+1)*cols] {
				res.data[j*rows+i] = v
			}
		}
		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, atErrorf(opTranspose, i, j, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}
