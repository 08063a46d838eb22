// SPDX-License-Identifier: MIT
// Package: export
//
// summary.go - best-matching component per tract, stored as TOML.

package export

import (
	"io"
	"math"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/correlategm/matrix"
)

// NoMatch is the ComponentIndex of a tract whose correlations are all NaN.
const NoMatch = -1

// Match pairs a tract with its most correlated component.
type Match struct {
	Tract          string  `toml:"tract"`
	TractIndex     int     `toml:"tract_index"`
	Component      string  `toml:"component"`
	ComponentIndex int     `toml:"component_index"`
	Correlation    float64 `toml:"correlation"`
}

// Summary lists one Match per tract, in tract order.
type Summary struct {
	Components int     `toml:"components"`
	Tracts     int     `toml:"tracts"`
	Matches    []Match `toml:"match"`
}

// BestMatches scans each row of corr (tracts × components) for its largest
// coefficient.
// Behavior highlights:
//   - NaN entries are skipped; an all-NaN row yields ComponentIndex == NoMatch
//     and Correlation NaN.
//   - Ties keep the lowest component index.
//   - nil label slices fall back to row/column indices.
//
// Errors:
//   - ErrNilMatrix (via matrix), ErrLabelCount.
func BestMatches(corr matrix.Matrix, tracts, components []string) (Summary, error) {
	if err := matrix.ValidateNotNil(corr); err != nil {
		return Summary{}, exportErrorf(opBestMatches, err)
	}
	r, c := corr.Rows(), corr.Cols()
	if (tracts != nil && len(tracts) != r) || (components != nil && len(components) != c) {
		return Summary{}, exportErrorf(opBestMatches, ErrLabelCount)
	}

	s := Summary{Components: c, Tracts: r, Matches: make([]Match, 0, r)}
	for i := 0; i < r; i++ {
		m := Match{Tract: label(tracts, i), TractIndex: i, ComponentIndex: NoMatch, Correlation: math.NaN()}
		for j := 0; j < c; j++ {
			v, err := corr.At(i, j)
			if err != nil {
				return Summary{}, exportErrorf(opBestMatches, err)
			}
			if math.IsNaN(v) {
				continue
			}
			if m.ComponentIndex == NoMatch || v > m.Correlation {
				m.ComponentIndex, m.Correlation = j, v
			}
		}
		if m.ComponentIndex != NoMatch {
			m.Component = label(components, m.ComponentIndex)
		}
		s.Matches = append(s.Matches, m)
	}

	return s, nil
}

func label(names []string, i int) string {
	if names == nil {
		return strconv.Itoa(i)
	}
	return names[i]
}

// WriteSummary encodes s as TOML.
func WriteSummary(w io.Writer, s Summary) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return exportErrorf(opWriteSummary, err)
	}
	return nil
}

// WriteSummaryFile creates path and writes s into it.
func WriteSummaryFile(path string, s Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return exportErrorf(opWriteSummary, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = exportErrorf(opWriteSummary, cerr)
		}
	}()

	return WriteSummary(f, s)
}

// ReadSummary decodes a TOML summary.
func ReadSummary(r io.Reader) (Summary, error) {
	var s Summary
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, exportErrorf(opReadSummary, err)
	}
	return s, nil
}

// ReadSummaryFile decodes the TOML summary at path.
func ReadSummaryFile(path string) (Summary, error) {
	var s Summary
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Summary{}, exportErrorf(opReadSummary, err)
	}
	return s, nil
}
