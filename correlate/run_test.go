// SPDX-License-Identifier: MIT

package correlate_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tliron/commonlog"

	"github.com/katalvlaran/correlategm/cifti"
	"github.com/katalvlaran/correlategm/correlate"
	"github.com/katalvlaran/correlategm/export"
	"github.com/katalvlaran/correlategm/matrix"
)

const samples = 64

// RunSuite drives the pipeline against synthetic dscalar files.
type RunSuite struct {
	suite.Suite
	ctx   context.Context
	dir   string
	cfg   correlate.Config
	log   commonlog.Logger
	nmf   *matrix.Dense
	atlas *matrix.Dense
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(RunSuite))
}

func (s *RunSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
	s.log = commonlog.GetLogger("correlategm.test")

	cfg, err := correlate.ParseEnvFrom(map[string]string{"CORRELATEGM_WIDTH_INCHES": "4", "CORRELATEGM_DPI": "80"})
	require.NoError(s.T(), err)
	s.cfg = cfg

	// Three components; tract 0 equals component 1, tract 1 is constant.
	comp := make([]float64, 3*samples)
	tract := make([]float64, 2*samples)
	for k := 0; k < samples; k++ {
		x := float64(k)
		comp[k] = math.Sin(x / 3)
		comp[samples+k] = math.Cos(x/5) + 0.1*x
		comp[2*samples+k] = math.Mod(x*7, 11)
		tract[k] = comp[samples+k]
		tract[samples+k] = 2
	}
	s.nmf = s.save("nmf.dscalar.nii", 3, comp, []string{"c0", "c1", "c2"})
	s.atlas = s.save("atlas.dscalar.nii.gz", 2, tract, []string{"CST_L", "UNC_R"})
}

func (s *RunSuite) save(name string, rows int, vals []float64, maps []string) *matrix.Dense {
	d, err := matrix.NewDenseFrom(rows, len(vals)/rows, vals)
	require.NoError(s.T(), err)
	img := &cifti.Image{Header: cifti.Header{Datatype: cifti.DTFloat64}, Data: d, Maps: maps}
	require.NoError(s.T(), cifti.Save(filepath.Join(s.dir, name), img))
	return d
}

func (s *RunSuite) args(n string) correlate.Args {
	return correlate.Args{
		NComponents: n,
		NMFPath:     filepath.Join(s.dir, "nmf.dscalar.nii"),
		AtlasPath:   filepath.Join(s.dir, "atlas.dscalar.nii.gz"),
		SaveDir:     s.dir,
	}
}

func (s *RunSuite) TestWritesAllOutputs() {
	res, err := correlate.Run(s.ctx, s.cfg, s.args("3"), s.log)
	s.Require().NoError(err)
	s.Empty(res.Warnings)

	s.Equal(filepath.Join(s.dir, "3_NMF_GM_correlation.csv"), res.CSVPath)
	s.Equal(filepath.Join(s.dir, "3_NMF_GM_correlation.png"), res.PNGPath)
	s.Equal(filepath.Join(s.dir, "3_NMF_GM_best_matches.toml"), res.SummaryPath)
	for _, p := range []string{res.CSVPath, res.PNGPath, res.SummaryPath} {
		s.FileExists(p)
	}

	// Shape is tracts × components.
	s.Equal(2, res.Correlation.Rows())
	s.Equal(3, res.Correlation.Cols())

	v, err := res.Correlation.At(0, 1)
	s.Require().NoError(err)
	s.InDelta(1.0, v, 1e-12)
	for j := 0; j < 3; j++ {
		v, _ = res.Correlation.At(1, j)
		s.Truef(math.IsNaN(v), "constant tract must give NaN, got %g at %d", v, j)
	}

	want, err := matrix.CrossCorrelation(s.atlas, s.nmf)
	s.Require().NoError(err)
	got, err := export.ReadCSVFile(res.CSVPath)
	s.Require().NoError(err)
	ok, err := matrix.AllCloseEqualNaN(got, want, 0, 0)
	s.Require().NoError(err)
	s.True(ok)

	sum, err := export.ReadSummaryFile(res.SummaryPath)
	s.Require().NoError(err)
	s.Require().Len(sum.Matches, 2)
	s.Equal("CST_L", sum.Matches[0].Tract)
	s.Equal("c1", sum.Matches[0].Component)
	s.Equal(export.NoMatch, sum.Matches[1].ComponentIndex)
}

func (s *RunSuite) TestComponentCountMismatchWarns() {
	res, err := correlate.Run(s.ctx, s.cfg, s.args("5"), s.log)
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Contains(res.Warnings[0], "Are you sure your NMF file has 5 components?")
	s.FileExists(filepath.Join(s.dir, "5_NMF_GM_correlation.csv"))
}

func (s *RunSuite) TestNonIntegerComponentCountWarns() {
	res, err := correlate.Run(s.ctx, s.cfg, s.args("ten"), s.log)
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Contains(res.Warnings[0], `"ten" is not an integer`)
	s.FileExists(filepath.Join(s.dir, "ten_NMF_GM_correlation.csv"))
}

func (s *RunSuite) TestSummaryDisabled() {
	s.cfg.Summary = false
	res, err := correlate.Run(s.ctx, s.cfg, s.args("3"), s.log)
	s.Require().NoError(err)
	s.Empty(res.SummaryPath)
	s.NoFileExists(filepath.Join(s.dir, "3_NMF_GM_best_matches.toml"))
}

func (s *RunSuite) TestColumnMismatchWritesNothing() {
	s.save("narrow.dscalar.nii", 1, make([]float64, samples-1), nil)
	args := s.args("3")
	args.AtlasPath = filepath.Join(s.dir, "narrow.dscalar.nii")

	_, err := correlate.Run(s.ctx, s.cfg, args, s.log)
	s.ErrorIs(err, correlate.ErrColumnMismatch)
	s.ErrorIs(err, matrix.ErrDimensionMismatch)
	s.NoFileExists(filepath.Join(s.dir, "3_NMF_GM_correlation.csv"))
}

func (s *RunSuite) TestMissingInputOrDirectory() {
	args := s.args("3")
	args.NMFPath = filepath.Join(s.dir, "missing.nii")
	_, err := correlate.Run(s.ctx, s.cfg, args, s.log)
	s.ErrorIs(err, os.ErrNotExist)

	args = s.args("3")
	args.SaveDir = filepath.Join(s.dir, "not", "there")
	_, err = correlate.Run(s.ctx, s.cfg, args, s.log)
	s.ErrorIs(err, os.ErrNotExist)
}

func (s *RunSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := correlate.Run(ctx, s.cfg, s.args("3"), s.log)
	s.ErrorIs(err, context.Canceled)
}
