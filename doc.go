// SPDX-License-Identifier: MIT

// Package correlategm relates NMF grey-matter components to white-matter
// tract blueprints.
//
// Both inputs are CIFTI dense-scalar files whose rows are maps (components
// or tracts) sampled over the same grayordinates. Every tract row is
// correlated with every component row and the tracts × components matrix
// is written as CSV and rendered as a heatmap.
//
// Packages:
//
//	cifti      NIfTI-1/NIfTI-2 and CIFTI-2 dscalar reading and writing
//	matrix     dense row-major matrices, row statistics, cross-correlation
//	export     numpy-style CSV and the best-match TOML summary
//	heatmap    PNG rendering with a plasma colormap, ticks and colorbar
//	correlate  argument/env parsing and the load → correlate → emit pipeline
//
// The command lives in cmd/correlategm:
//
//	correlategm <n_components> <NMF_GM_path> <atlas_tractography_path> <save_directory>
package correlategm
