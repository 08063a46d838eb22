// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the row-wise statistical transforms (centering, L2 normalization)
//     and the Pearson correlation kernels as deterministic compositions over
//     canonical kernels (MulTransB/Clip) and ew* micro-kernels.
//   - Keep tight loops centralized in ew* where it improves reuse and consistency.
//
// Exposed API:
//   - CenterRows(X)             -> (Xc, means)  // subtract per-row mean
//   - NormalizeRowsL2(X, ...)   -> (Y, norms)   // unit L2 rows; degenerate rows → NaN
//   - CrossCorrelation(A, B)    -> Corr         // Pearson(A[i,:], B[j,:]) for all i, j
//   - Pearson(x, y)             -> r            // single pair, same contract
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.
//
// AI-Hints:
//   - NaN is a legal output here: a constant row has no correlation with anything.
//     Sanitize downstream (e.g., when ranking) rather than inside the kernel.

package matrix

import "math"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opCenterRows       = "CenterRows"
	opNormalizeRowsL2  = "NormalizeRowsL2"
	opCrossCorrelation = "CrossCorrelation"
	opPearson          = "Pearson"
)

// Pearson coefficients are bounded; rounding may overshoot by a few ulps.
const (
	corrMin = -1.0
	corrMax = 1.0
)

// centerRows subtracts the per-row mean from every element (row-wise centering).
// Implementation:
//   - Stage 1: Validate X (non-nil) and handle zero-size as a strict no-op.
//   - Stage 2: Compute row means deterministically (Dense fast-path; At fallback).
//   - Stage 3: Apply ewBroadcastSubRows to produce a centered copy.
//
// Behavior highlights:
//   - Zero-size (0×N or N×0): returns (X, zeroMeans, nil) without allocations.
//   - A NaN anywhere in a row makes that row's mean (and centered row) NaN.
//   - A constant row gets its value as the mean, so it centres to exact
//     zeros even when the summed mean would not round back to the value.
//
// Returns:
//   - Matrix: centered copy (r×c) for r>0 && c>0; otherwise X itself (no-op).
//   - []float64: row means (len=r).
//
// Errors:
//   - ErrNilMatrix from validation.
//   - Wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for output (+ O(r) means).
func centerRows(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	r, c := X.Rows(), X.Cols()
	means := make([]float64, r)
	if r == 0 || c == 0 {
		return X, means, nil
	}

	var i, j int

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			means[i] = rowMean(d.data[i*c : (i+1)*c])
		}
	} else {
		var err error
		row := make([]float64, c)
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if row[j], err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opCenterRows, err)
				}
			}
			means[i] = rowMean(row)
		}
	}

	// Stage 3 (Apply): broadcast-subtract row means over columns.
	Xc, err := ewBroadcastSubRows(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return Xc, means, nil
}

// rowMean returns the arithmetic mean of x, or x[0] when every element
// equals x[0]. len(x) must be > 0.
func rowMean(x []float64) float64 {
	if isConstant(x) {
		return x[0]
	}
	s := ZeroSum
	for _, v := range x {
		s += v
	}

	return s / float64(len(x))
}

// isConstant reports whether every element equals x[0]. NaN never matches.
func isConstant(x []float64) bool {
	for _, v := range x {
		if v != x[0] {
			return false
		}
	}

	return len(x) > 0
}

// normalizeRowsL2 scales each row to have L2-norm == 1 when possible.
// Implementation:
//   - Stage 1: Validate X (non-nil) and handle zero-size as a strict no-op.
//   - Stage 2: Compute per-row L2 norms deterministically.
//   - Stage 3: Build row scale factors: 1/norm, or NaN for degenerate rows (norm ≤ eps).
//   - Stage 4: Apply ewScaleRows to produce a normalized copy.
//
// Behavior highlights:
//   - Degenerate rows become all-NaN: a direction cannot be defined for them,
//     and every dot product taken with such a row must be undefined too.
//   - A NaN norm (row with NaN entries) also yields an all-NaN row.
//
// Returns:
//   - Matrix: normalized copy (r×c) for r>0 && c>0; otherwise X itself (no-op).
//   - []float64: L2 norms (len=r).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) (+ O(r) auxiliary slices).
func normalizeRowsL2(X Matrix, eps float64) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}

	r, c := X.Rows(), X.Cols()
	norms := make([]float64, r)
	if r == 0 || c == 0 {
		return X, norms, nil
	}

	var i, j int
	var sq, v float64

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			sq = ZeroSum
			base := i * c
			for j = 0; j < c; j++ {
				v = d.data[base+j]
				sq += v * v
			}
			norms[i] = math.Sqrt(sq)
		}
	} else {
		var err error
		for i = 0; i < r; i++ {
			sq = ZeroSum
			for j = 0; j < c; j++ {
				v, err = X.At(i, j)
				if err != nil {
					return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
				}
				sq += v * v
			}
			norms[i] = math.Sqrt(sq)
		}
	}

	// Stage 3 (Prepare scales): NaN norms fall through to 1/NaN == NaN.
	scale := make([]float64, r)
	for i = 0; i < r; i++ {
		if norms[i] <= eps {
			scale[i] = math.NaN()
		} else {
			scale[i] = 1.0 / norms[i]
		}
	}

	Y, err := ewScaleRows(X, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}

	return Y, norms, nil
}

// crossCorrelation computes Corr[i,j] = Pearson(A[i,:], B[j,:]) for every pair.
// Implementation:
//   - Stage 1: ValidateSameCols(A, B): both row sets must share the sample axis.
//   - Stage 2: Center rows of A and B (independently per row).
//   - Stage 3: Normalize centered rows to unit L2 norm (degenerate → NaN row).
//   - Stage 4: Corr = Â · B̂ᵀ via MulTransB.
//   - Stage 5: Clip into [-1, 1] to absorb rounding; NaN passes through.
//
// Behavior highlights:
//   - Each pair is independent: no normalization is shared across pairs,
//     so Corr equals the per-pair Pearson loop up to rounding.
//   - Row order of both inputs is preserved (rows of A → rows, rows of B → cols).
//   - A constant row yields NaN for every entry it participates in.
//
// Inputs:
//   - A: n_a×c matrix; B: n_b×c matrix.
//   - opts: WithEpsilon sets the degenerate-row threshold.
//
// Returns:
//   - Matrix: n_a×n_b Dense (NaN allowed).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (different or zero column counts).
//
// Determinism:
//   - Fixed loop orders in every stage.
//
// Complexity:
//   - Time O((n_a+n_b)*c + n_a*n_b*c), Space O((n_a+n_b)*c + n_a*n_b).
//
// AI-Hints:
//   - For a square self-correlation pass the same matrix twice.
func crossCorrelation(A, B Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateSameCols(A, B); err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}
	o := gatherOptions(opts...)

	Ac, _, err := centerRows(A)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}
	Bc, _, err := centerRows(B)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}

	Ahat, _, err := normalizeRowsL2(Ac, o.eps)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}
	Bhat, _, err := normalizeRowsL2(Bc, o.eps)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}

	G, err := MulTransB(Ahat, Bhat)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}

	Corr, err := ewClipRange(G, corrMin, corrMax)
	if err != nil {
		return nil, matrixErrorf(opCrossCorrelation, err)
	}

	return Corr, nil
}

// pearson computes the Pearson correlation between two equal-length vectors.
// Implementation:
//   - Stage 1: validate lengths (equal, > 0).
//   - Stage 2: two-pass means, then centered cross/auto sums.
//   - Stage 3: r = Σ dx·dy / sqrt(Σ dx² · Σ dy²), clamped into [-1, 1].
//
// Behavior highlights:
//   - Constant input yields NaN, matching CrossCorrelation. Constancy is
//     tested on the raw values, not on a rounded variance.
//
// Errors:
//   - ErrNilMatrix (nil slice), ErrDimensionMismatch (length mismatch or empty).
//
// Complexity:
//   - Time O(n), Space O(1).
func pearson(x, y []float64) (float64, error) {
	if err := ValidateVecLen(x, len(y)); err != nil {
		return math.NaN(), matrixErrorf(opPearson, err)
	}
	n := len(x)
	if n == 0 {
		return math.NaN(), matrixErrorf(opPearson, ErrDimensionMismatch)
	}

	if isConstant(x) || isConstant(y) {
		return math.NaN(), nil
	}
	mx, my := rowMean(x), rowMean(y)

	var sxy, sxx, syy, dx, dy float64
	for i := 0; i < n; i++ {
		dx = x[i] - mx
		dy = y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), nil
	}

	r := sxy / math.Sqrt(sxx*syy)
	if r < corrMin {
		r = corrMin
	} else if r > corrMax {
		r = corrMax
	}

	return r, nil
}
