// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// FromRows builds a Dense from a slice of equal-length rows (copied).
// Handy for tests and small fixtures; opts control the numeric policy.
//
// Errors: ErrInvalidDimensions (no rows / empty rows), ErrBadShape (ragged).
// Complexity: O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	flat := make([]float64, 0, len(rows)*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf("FromRows", ErrBadShape)
		}
		flat = append(flat, row...)
	}

	return NewDenseFrom(len(rows), c, flat, opts...)
}

// ---------- Sanitization & numeric compare (thin wrappers → ew*) ----------

// Clip returns a copy of m with elements clamped into [lo, hi] (both finite).
// NaN elements are kept as NaN. If lo > hi, bounds are swapped.
// Time: O(r*c). Space: O(r*c). Deterministic.
func Clip(m Matrix, lo, hi float64) (Matrix, error) { return ewClipRange(m, lo, hi) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN is never close to anything; ±Inf is close only to the same infinity.
// Time: O(r*c). Space: O(1). Deterministic.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol, false)
}

// AllCloseEqualNaN is AllClose with NaN == NaN (numpy's equal_nan=True).
// Use it to compare correlation matrices where NaN marks undefined entries.
func AllCloseEqualNaN(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol, true)
}

// ---------- Statistics (public surface → internal implementations) ----------

// CenterRows returns a centered copy: Xc[i,*] = X[i,*] − mean(X[i,*]) for each row.
// Returns Xc and the row means. Time: O(r*c). Space: O(r*c). Deterministic.
func CenterRows(X Matrix) (Matrix, []float64, error) { return centerRows(X) }

// NormalizeRowsL2 scales each row to unit L2 norm; returns Y and per-row norms.
// Rows whose norm is ≤ eps (WithEpsilon, default 0) become all-NaN.
// Time: O(r*c). Space: O(r*c). Deterministic.
func NormalizeRowsL2(X Matrix, opts ...Option) (Matrix, []float64, error) {
	return normalizeRowsL2(X, gatherOptions(opts...).eps)
}

// CrossCorrelation returns the n_a×n_b matrix of Pearson correlations between
// every row of A and every row of B (same column count required).
//
//	Corr[i,j] = Σ_k (A[i,k]-ā_i)(B[j,k]-b̄_j) / (‖A[i,:]-ā_i‖ · ‖B[j,:]-b̄_j‖)
//
// Constant rows produce NaN entries; NaN is propagated, never caught.
// Time: O(n_a*n_b*c). Space: O((n_a+n_b)*c + n_a*n_b).
func CrossCorrelation(A, B Matrix, opts ...Option) (Matrix, error) {
	return crossCorrelation(A, B, opts...)
}

// Pearson returns the Pearson correlation of two equal-length vectors.
// Zero-variance input yields (NaN, nil). Time: O(n). Space: O(1).
func Pearson(x, y []float64) (float64, error) { return pearson(x, y) }
