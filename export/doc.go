// SPDX-License-Identifier: MIT

// Package export writes correlation results to disk.
//
// WriteCSV produces the numpy.savetxt layout (comma separated, %.18e, no
// header) that downstream notebooks already read; ReadCSV parses it back.
// BestMatches reduces a tracts × components matrix to the best component per
// tract, and WriteSummary stores that reduction as TOML.
package export
