// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and utilities for kernels.
//   - Keep the naive reference implementations next to the fixtures they check.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/correlategm/matrix"
)

// epsTight is the tolerance for identities that hold up to a few ulps.
const epsTight = 1e-12

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Stage 1: Embed matrix.Matrix to forward all methods.
//   - Stage 2: Use hide{X} in tests to force non-*Dense (fallback) paths.
//
// AI-Hints:
//   - Prefer wrapping ONLY the operand you want to de-opt; keep the other one *Dense to isolate path differences.
type hide struct{ matrix.Matrix }

// NewFilledDense BUILDS an r×c *Dense from row-major vals (NaN allowed).
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	return m
}

// RandFilledDense RETURNS an r×c *Dense with uniform values in [-1, 1).
// A fixed seed keeps every run identical.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}

	return NewFilledDense(t, r, c, vals)
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// MustRow COPIES row i of m through the public accessor.
func MustRow(t testing.TB, m matrix.Matrix, i int) []float64 {
	t.Helper()
	out := make([]float64, m.Cols())
	for j := range out {
		out[j] = MustAt(t, m, i, j)
	}

	return out
}

// CompareClose ASSERTS equal shapes and element-wise closeness (NaN == NaN).
func CompareClose(t testing.TB, want, got matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllCloseEqualNaN(got, want, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// sliceClose ASSERTS two vectors are element-wise close (NaN == NaN).
func sliceClose(t testing.TB, got, want []float64, rtol, atol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.Truef(t, math.IsNaN(got[i]), "idx %d: want NaN, got %g", i, got[i])
			continue
		}
		require.InDeltaf(t, want[i], got[i], atol+rtol*math.Abs(want[i]), "idx %d", i)
	}
}

// naiveCrossCorrelation is the reference: one Pearson call per (i, j) pair.
func naiveCrossCorrelation(t testing.TB, A, B matrix.Matrix) *matrix.Dense {
	t.Helper()
	vals := make([]float64, 0, A.Rows()*B.Rows())
	for i := 0; i < A.Rows(); i++ {
		x := MustRow(t, A, i)
		for j := 0; j < B.Rows(); j++ {
			r, err := matrix.Pearson(x, MustRow(t, B, j))
			require.NoError(t, err)
			vals = append(vals, r)
		}
	}

	return NewFilledDense(t, A.Rows(), B.Rows(), vals)
}
