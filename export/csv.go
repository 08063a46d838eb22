// SPDX-License-Identifier: MIT
// Package: export
//
// csv.go - correlation matrix <-> CSV.
//
// Format (numpy.savetxt with delimiter=","):
//   - one line per matrix row, no header;
//   - every value as %.18e, NaN as "nan", ±Inf as "inf"/"-inf".

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/correlategm/matrix"
)

const (
	csvPrecision = 18
	csvNaN       = "nan"
	csvPosInf    = "inf"
	csvNegInf    = "-inf"
)

// FormatValue renders v the way numpy's "%.18e" does.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return csvNaN
	case math.IsInf(v, 1):
		return csvPosInf
	case math.IsInf(v, -1):
		return csvNegInf
	}
	return strconv.FormatFloat(v, 'e', csvPrecision, 64)
}

// WriteCSV writes m row by row to w.
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return exportErrorf(opWriteCSV, err)
	}

	cw := csv.NewWriter(w)
	rec := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range rec {
			v, err := m.At(i, j)
			if err != nil {
				return exportErrorf(opWriteCSV, err)
			}
			rec[j] = FormatValue(v)
		}
		if err := cw.Write(rec); err != nil {
			return exportErrorf(opWriteCSV, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return exportErrorf(opWriteCSV, err)
	}
	return nil
}

// WriteCSVFile creates path and writes m into it.
func WriteCSVFile(path string, m matrix.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return exportErrorf(opWriteCSV, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = exportErrorf(opWriteCSV, cerr)
		}
	}()

	return WriteCSV(f, m)
}

// ReadCSV parses a matrix written by WriteCSV (or numpy.savetxt).
// All records must have the same number of fields.
func ReadCSV(r io.Reader) (*matrix.Dense, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	var (
		vals []float64
		cols int
		rows int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, exportErrorf(opReadCSV, fmt.Errorf("%v: %w", err, ErrMalformedCSV))
		}
		if rows == 0 {
			cols = len(rec)
		}
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, exportErrorf(opReadCSV, fmt.Errorf("row %d col %d: %q: %w", rows, j, field, ErrMalformedCSV))
			}
			vals = append(vals, v)
		}
		rows++
	}
	if rows == 0 || cols == 0 {
		return nil, exportErrorf(opReadCSV, ErrEmpty)
	}

	return matrix.NewDenseFrom(rows, cols, vals, matrix.WithNoValidateNaNInf())
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, exportErrorf(opReadCSV, err)
	}
	defer f.Close()

	return ReadCSV(f)
}
