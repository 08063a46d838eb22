// SPDX-License-Identifier: MIT
// Package: correlate
//
// run.go - the load → check → correlate → emit pipeline.

package correlate

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/katalvlaran/correlategm/cifti"
	"github.com/katalvlaran/correlategm/export"
	"github.com/katalvlaran/correlategm/heatmap"
	"github.com/katalvlaran/correlategm/matrix"
)

// Output file suffixes, appended to the verbatim n_components argument.
const (
	csvSuffix     = "_NMF_GM_correlation.csv"
	pngSuffix     = "_NMF_GM_correlation.png"
	summarySuffix = "_NMF_GM_best_matches.toml"
)

// Result describes one completed run.
type Result struct {
	// Correlation is tracts × components.
	Correlation *matrix.Dense
	CSVPath     string
	PNGPath     string
	SummaryPath string // empty when the summary is disabled
	Warnings    []string
}

// OutputPaths returns the CSV, PNG and summary paths for args.
func OutputPaths(args Args) (csvPath, pngPath, summaryPath string) {
	base := filepath.Join(args.SaveDir, args.NComponents)
	return base + csvSuffix, base + pngSuffix, base + summarySuffix
}

// Run executes the pipeline.
// Implementation:
//   - Stage 1: load the NMF components and the tract blueprints.
//   - Stage 2: warn when n_components disagrees with the NMF row count
//     (or is not an integer); reject differing column counts.
//   - Stage 3: correlate every tract row with every component row.
//   - Stage 4: write the CSV, the heatmap and, if enabled, the summary.
//
// ctx is checked between stages. The save directory must already exist.
//
// Errors:
//   - ctx.Err(), ErrColumnMismatch, and wrapped cifti/export/heatmap errors.
func Run(ctx context.Context, cfg Config, args Args, log commonlog.Logger) (*Result, error) {
	res := &Result{}
	res.CSVPath, res.PNGPath, res.SummaryPath = OutputPaths(args)
	if !cfg.Summary {
		res.SummaryPath = ""
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nmf, err := cifti.Load(args.NMFPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s: %d maps x %d samples", args.NMFPath, nmf.Data.Rows(), nmf.Data.Cols())

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	atlas, err := cifti.Load(args.AtlasPath)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s: %d maps x %d samples", args.AtlasPath, atlas.Data.Rows(), atlas.Data.Cols())

	if w := componentCountWarning(args.NComponents, nmf.Data.Rows()); w != "" {
		log.Warning(w)
		res.Warnings = append(res.Warnings, w)
	}
	if nmf.Data.Cols() != atlas.Data.Cols() {
		return nil, fmt.Errorf("%s has %d samples, %s has %d: %w",
			args.NMFPath, nmf.Data.Cols(), args.AtlasPath, atlas.Data.Cols(), ErrColumnMismatch)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("Calculating correlations...")
	corr, err := matrix.CrossCorrelation(atlas.Data, nmf.Data)
	if err != nil {
		return nil, fmt.Errorf("correlate: %w", err)
	}
	dense, ok := corr.(*matrix.Dense)
	if !ok {
		return nil, fmt.Errorf("correlate: unexpected result type %T", corr)
	}
	res.Correlation = dense
	log.Info("Done!")

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("Saving correlation matrix in .csv format")
	if err = export.WriteCSVFile(res.CSVPath, dense); err != nil {
		return nil, err
	}

	log.Info("Saving matrix graphic")
	tracts, components := atlas.MapNames(), nmf.MapNames()
	img, err := heatmap.Render(dense, tracts, components,
		heatmap.WithSize(cfg.WidthInches, cfg.DPI),
		heatmap.WithLabels(cfg.XLabel, cfg.YLabel),
	)
	if err != nil {
		return nil, err
	}
	if err = heatmap.EncodeFile(res.PNGPath, img); err != nil {
		return nil, err
	}

	if cfg.Summary {
		s, err := export.BestMatches(dense, tracts, components)
		if err != nil {
			return nil, err
		}
		if err = export.WriteSummaryFile(res.SummaryPath, s); err != nil {
			return nil, err
		}
		log.Infof("Saved best matches to %s", res.SummaryPath)
	}

	return res, nil
}

// componentCountWarning returns the mismatch warning, or "" when the
// user-entered count agrees with the NMF file.
func componentCountWarning(nComponents string, rows int) string {
	n, err := strconv.Atoi(nComponents)
	if err != nil {
		return fmt.Sprintf("Warning: user-entered number of components %q is not an integer; skipping the component count check.", nComponents)
	}
	if n != rows {
		return "Warning: user-entered number of components does not match shape of the NMF GM components file. " +
			"Are you sure your NMF file has " + nComponents + " components?"
	}
	return ""
}
