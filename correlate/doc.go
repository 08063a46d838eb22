// SPDX-License-Identifier: MIT

// Package correlate wires the correlategm pipeline together.
//
// Run loads an NMF grey-matter component file and an atlas tract blueprint
// file, checks them, computes the tracts × components Pearson correlation
// matrix and writes
//
//	<save_directory>/<n_components>_NMF_GM_correlation.csv
//	<save_directory>/<n_components>_NMF_GM_correlation.png
//	<save_directory>/<n_components>_NMF_GM_best_matches.toml   (optional)
//
// Positional arguments come from ParseArgs; optional tuning from the
// CORRELATEGM_* environment variables (ParseEnv).
package correlate
