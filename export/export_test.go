// SPDX-License-Identifier: MIT

package export_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/correlategm/export"
	"github.com/katalvlaran/correlategm/matrix"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	flat := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		flat = append(flat, r...)
	}
	m, err := matrix.NewDenseFrom(len(rows), len(rows[0]), flat, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	return m
}

func TestFormatValue_NumpyLayout(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		1:     "1.000000000000000000e+00",
		-0.25: "-2.500000000000000000e-01",
		1e-7:  "9.999999999999999547e-08",
		0:     "0.000000000000000000e+00",
	}
	for v, want := range tests {
		assert.Equal(t, want, export.FormatValue(v))
	}
	assert.Equal(t, "nan", export.FormatValue(math.NaN()))
	assert.Equal(t, "inf", export.FormatValue(math.Inf(1)))
	assert.Equal(t, "-inf", export.FormatValue(math.Inf(-1)))
}

func TestWriteCSV_Layout(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{{1, -1}, {math.NaN(), 0.5}})

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, m))

	want := "1.000000000000000000e+00,-1.000000000000000000e+00\n" +
		"nan,5.000000000000000000e-01\n"
	assert.Equal(t, want, buf.String())
}

func TestCSV_RoundTripFile(t *testing.T) {
	t.Parallel()

	m := mustDense(t, [][]float64{
		{0.123456789012345678, -0.9999999999999999, math.NaN()},
		{1, -1, 1.0 / 3},
	})
	path := filepath.Join(t.TempDir(), "10_NMF_GM_correlation.csv")
	require.NoError(t, export.WriteCSVFile(path, m))

	got, err := export.ReadCSVFile(path)
	require.NoError(t, err)

	ok, err := matrix.AllCloseEqualNaN(got, m, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "%.18e digits must reproduce float64 exactly")
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	_, err := export.ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, export.ErrEmpty)

	_, err = export.ReadCSV(strings.NewReader("1,2\n3\n"))
	assert.ErrorIs(t, err, export.ErrMalformedCSV)

	_, err = export.ReadCSV(strings.NewReader("1,x\n"))
	assert.ErrorIs(t, err, export.ErrMalformedCSV)
}

func TestBestMatches(t *testing.T) {
	t.Parallel()

	corr := mustDense(t, [][]float64{
		{0.1, 0.9, 0.9},                      // tie → first
		{math.NaN(), -0.2, -0.1},             // NaN skipped
		{math.NaN(), math.NaN(), math.NaN()}, // nothing to match
	})

	s, err := export.BestMatches(corr, []string{"CST", "AF", "OR"}, nil)
	require.NoError(t, err)
	require.Len(t, s.Matches, 3)
	assert.Equal(t, 3, s.Tracts)
	assert.Equal(t, 3, s.Components)

	assert.Equal(t, "CST", s.Matches[0].Tract)
	assert.Equal(t, 1, s.Matches[0].ComponentIndex)
	assert.Equal(t, "1", s.Matches[0].Component)
	assert.Equal(t, 0.9, s.Matches[0].Correlation)

	assert.Equal(t, 2, s.Matches[1].ComponentIndex)
	assert.Equal(t, -0.1, s.Matches[1].Correlation)

	assert.Equal(t, export.NoMatch, s.Matches[2].ComponentIndex)
	assert.Empty(t, s.Matches[2].Component)
	assert.True(t, math.IsNaN(s.Matches[2].Correlation))

	_, err = export.BestMatches(corr, []string{"only one"}, nil)
	assert.ErrorIs(t, err, export.ErrLabelCount)

	_, err = export.BestMatches(nil, nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSummary_TOMLRoundTrip(t *testing.T) {
	t.Parallel()

	corr := mustDense(t, [][]float64{{0.3, 0.7}, {math.NaN(), math.NaN()}})
	s, err := export.BestMatches(corr, nil, []string{"comp_a", "comp_b"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "10_NMF_GM_best_matches.toml")
	require.NoError(t, export.WriteSummaryFile(path, s))

	got, err := export.ReadSummaryFile(path)
	require.NoError(t, err)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, s.Components, got.Components)
	assert.Equal(t, s.Tracts, got.Tracts)
	assert.Equal(t, s.Matches[0], got.Matches[0])
	assert.Equal(t, export.NoMatch, got.Matches[1].ComponentIndex)
	assert.True(t, math.IsNaN(got.Matches[1].Correlation))

	var buf bytes.Buffer
	require.NoError(t, export.WriteSummary(&buf, s))
	assert.Contains(t, buf.String(), "[[match]]")
	assert.Contains(t, buf.String(), `component = "comp_b"`)
}
