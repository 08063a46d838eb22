// SPDX-License-Identifier: MIT

// Package heatmap: functional configuration for Render.
//
// Defaults reproduce the classic seaborn figure: 10 in wide at 100 dpi,
// height from the aspect rule, 0.25 pt white grid, tick labels and a colorbar.
// Constructors panic on nonsensical values (programmer error); Render itself
// never panics.
package heatmap

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	DefaultWidthInches = 10.0
	DefaultDPI         = 100
	DefaultGridWidth   = 0.25 // points
	DefaultXLabel      = "Atlas component"
	DefaultYLabel      = "NMF component"
)

const (
	panicSizeInvalid   = "heatmap: WithSize: width must be finite > 0 and dpi > 0"
	panicHeightInvalid = "heatmap: WithHeight: height must be finite > 0"
	panicGridInvalid   = "heatmap: WithGridWidth: width must be finite >= 0"
)

// Option mutates Options.
type Option func(*Options)

// Options is the resolved renderer configuration.
type Options struct {
	widthInches  float64
	heightInches float64 // 0 → FigureHeight
	dpi          int
	xLabel       string
	yLabel       string
	gridWidth    float64
	tickLabels   bool
	colorbar     bool
}

// WithSize sets the figure width in inches and the resolution.
func WithSize(widthInches float64, dpi int) Option {
	if math.IsNaN(widthInches) || math.IsInf(widthInches, 0) || widthInches <= 0 || dpi <= 0 {
		panic(panicSizeInvalid)
	}
	return func(o *Options) { o.widthInches, o.dpi = widthInches, dpi }
}

// WithHeight overrides the aspect rule with a fixed height in inches.
func WithHeight(inches float64) Option {
	if math.IsNaN(inches) || math.IsInf(inches, 0) || inches <= 0 {
		panic(panicHeightInvalid)
	}
	return func(o *Options) { o.heightInches = inches }
}

// WithLabels sets the axis titles. Empty strings hide them.
func WithLabels(x, y string) Option {
	return func(o *Options) { o.xLabel, o.yLabel = x, y }
}

// WithGridWidth sets the cell separator width in points; 0 disables it.
func WithGridWidth(points float64) Option {
	if math.IsNaN(points) || math.IsInf(points, 0) || points < 0 {
		panic(panicGridInvalid)
	}
	return func(o *Options) { o.gridWidth = points }
}

// WithTickLabels toggles the per-row/per-column labels.
func WithTickLabels(on bool) Option {
	return func(o *Options) { o.tickLabels = on }
}

// WithColorbar toggles the colorbar.
func WithColorbar(on bool) Option {
	return func(o *Options) { o.colorbar = on }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		widthInches: DefaultWidthInches,
		dpi:         DefaultDPI,
		xLabel:      DefaultXLabel,
		yLabel:      DefaultYLabel,
		gridWidth:   DefaultGridWidth,
		tickLabels:  true,
		colorbar:    true,
	}
	for _, set := range user {
		set(&o)
	}
	return o
}

// AspectScale is the inch factor of the aspect rule. It is independent of
// the figure width: a wider figure keeps the same height.
const AspectScale = 10.0

// FigureHeight applies the aspect rule: height = round(cols/rows * AspectScale),
// rounding half to even, never below 1 inch.
func FigureHeight(rows, cols int) float64 {
	if rows <= 0 || cols <= 0 {
		return 1
	}
	h := math.RoundToEven(float64(cols) / float64(rows) * AspectScale)
	if h < 1 {
		h = 1
	}
	return h
}
