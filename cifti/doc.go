// SPDX-License-Identifier: MIT

// Package cifti reads and writes scalar neuroimaging files as matrices.
//
// Supported containers:
//
//   - NIfTI-2 (540-byte header) and NIfTI-1 (348-byte header), either byte order.
//   - gzip-compressed streams, detected from the first two bytes.
//   - CIFTI-2 dense scalar files: the NIfTI-2 container with an XML
//     extension (code 32) naming the maps and the grayordinate structures.
//
// Load returns an Image whose Data is a *matrix.Dense with one row per map
// (component, tract) and one column per spatial sample. Integer datatypes are
// widened to float64 and scl_slope/scl_inter is applied, so the values match
// what neuroimaging toolkits report as floating-point data. NaN samples are
// preserved.
//
// Errors are sentinels (ErrBadMagic, ErrTruncated, ErrUnsupportedDatatype,
// ErrBadDimensions, ErrBadExtension) wrapped with the decoding stage and the
// file path; match them with errors.Is.
package cifti
