// SPDX-License-Identifier: MIT

// Package matrix offers a dense row-major float64 matrix and the numeric
// kernels correlategm is built on.
//
// The matrix package provides:
//
//   - Dense, a bounds-checked row-major matrix with an explicit NaN/Inf policy.
//   - Central validators (nil, shape, column compatibility) returning sentinels.
//   - Canonical kernels: Mul, MulTransB, Transpose, Clip, AllClose.
//   - Statistics: CenterRows, NormalizeRowsL2, Pearson and CrossCorrelation,
//     the all-pairs row correlation between two matrices.
//
// Numeric policy:
//
//	NewDense rejects NaN/±Inf in Set by default. Matrices that carry
//	measurement data or correlation results are allocated with the policy
//	disabled (WithNoValidateNaNInf), because NaN is a legal outcome there:
//	a constant row has no defined correlation and the kernels propagate NaN
//	instead of hiding it.
//
// All kernels use fixed i→j loop orders and a *Dense fast-path over the flat
// buffer; results are deterministic for a given input.
package matrix
