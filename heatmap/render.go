// SPDX-License-Identifier: MIT
// Package: heatmap
//
// render.go - matrix → annotated heatmap raster.
//
// Layout (pixels), outside in:
//
//	+---------------------------------------------+
//	|            x axis title                     |
//	|            column tick labels (vertical)    |
//	| y  row  +-------------------+   colorbar    |
//	| ti tick |   cell grid       |   |  | ticks  |
//	| tl lbls +-------------------+               |
//	+---------------------------------------------+
//
// Rows of the matrix run top to bottom, columns left to right.

package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/katalvlaran/correlategm/matrix"
)

const (
	opRender = "Render"
	opEncode = "Encode"

	pad          = 4  // px between layout bands
	colorbarTick = 3  // number of colorbar labels (min, mid, max)
	minBarWidth  = 8  // px
	barFraction  = 40 // colorbar width = W / barFraction
)

var (
	colorBG   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorText = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
	colorGrid = colorBG
)

// layout is the pixel geometry of one figure.
type layout struct {
	w, h           int
	plot           image.Rectangle
	bar            image.Rectangle
	rowTicks       bool
	colTicks       bool
	gridPx         int
	rowLabelRight  int // x where row tick labels end
	colLabelBottom int // y where column tick labels end
}

// Render draws m as a heatmap.
// Implementation:
//   - Stage 1: validate m and labels; resolve options and figure size.
//   - Stage 2: vmin/vmax over finite entries (Dense.Do).
//   - Stage 3: reserve margins for titles, tick labels and colorbar.
//   - Stage 4: paint cells (NaN cells stay background), grid, colorbar, text.
//
// Behavior highlights:
//   - nil label slices fall back to indices.
//   - Tick labels are drawn only when a cell is at least one text line thick.
//   - The figure grows when it has fewer pixels than cells on either axis.
//   - A constant matrix maps every finite cell to the lowest colour.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrLabelCount, ErrTooSmall (grid beyond 32767 px).
func Render(m *matrix.Dense, rowLabels, colLabels []string, opts ...Option) (*image.RGBA, error) {
	img, _, err := render(m, rowLabels, colLabels, opts...)
	return img, err
}

// render is Render that also returns the layout it painted with.
func render(m *matrix.Dense, rowLabels, colLabels []string, opts ...Option) (*image.RGBA, layout, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, layout{}, heatmapErrorf(opRender, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rowLabels == nil {
		rowLabels = indexLabels(rows)
	}
	if colLabels == nil {
		colLabels = indexLabels(cols)
	}
	if len(rowLabels) != rows || len(colLabels) != cols {
		return nil, layout{}, heatmapErrorf(opRender, ErrLabelCount)
	}

	o := gatherOptions(opts...)
	heightInches := o.heightInches
	if heightInches == 0 {
		heightInches = FigureHeight(rows, cols)
	}
	w := pixels(o.widthInches, o.dpi)
	h := pixels(heightInches, o.dpi)

	vmin, vmax, finite := valueRange(m)
	barLabels := colorbarLabels(vmin, vmax, finite)

	lay, err := computeLayout(w, h, rows, cols, rowLabels, colLabels, barLabels, o)
	if err != nil {
		return nil, layout{}, heatmapErrorf(opRender, err)
	}

	c := newCanvas(lay.w, lay.h, colorBG)
	cm := Plasma()
	paintCells(c, m, lay, cm, vmin, vmax)
	paintGrid(c, lay, rows, cols)
	if o.colorbar {
		paintColorbar(c, lay, cm, barLabels)
	}
	paintText(c, lay, rows, cols, rowLabels, colLabels, o)

	return c.img, lay, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return heatmapErrorf(opEncode, err)
	}
	return nil
}

// EncodeFile creates path and writes img as PNG.
func EncodeFile(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return heatmapErrorf(opEncode, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = heatmapErrorf(opEncode, cerr)
		}
	}()

	return Encode(f, img)
}

func pixels(inches float64, dpi int) int {
	px := int(math.Round(inches * float64(dpi)))
	if px < 1 {
		px = 1
	}
	if px > math.MaxInt16 {
		px = math.MaxInt16
	}
	return px
}

func indexLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// valueRange returns min/max over non-NaN, finite entries.
func valueRange(m *matrix.Dense) (vmin, vmax float64, finite bool) {
	vmin, vmax = math.Inf(1), math.Inf(-1)
	m.Do(func(_, _ int, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
		finite = true
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
		return true
	})
	if !finite {
		return 0, 1, false
	}
	return vmin, vmax, true
}

func colorbarLabels(vmin, vmax float64, finite bool) []string {
	if !finite {
		return nil
	}
	out := make([]string, colorbarTick)
	for k := range out {
		v := vmax - (vmax-vmin)*float64(k)/float64(colorbarTick-1)
		out[k] = fmt.Sprintf("%.2f", v)
	}
	return out
}

func maxWidth(labels []string) int {
	w := 0
	for _, s := range labels {
		if tw := textWidth(s); tw > w {
			w = tw
		}
	}
	return w
}

// computeLayout reserves the margins and places the plot.
// Implementation:
//   - Stage 1: fixed margins (titles, colorbar and its labels).
//   - Stage 2: a tick band is kept only when its cells are at least one text
//     line thick and the band still leaves one pixel per cell across it.
//   - Stage 3: when even the bare plot has less than one pixel per cell,
//     the figure grows to fit instead of failing.
//
// ErrTooSmall remains only for grids that cannot fit the int16 pixel range.
func computeLayout(w, h, rows, cols int, rowLabels, colLabels, barLabels []string, o Options) (layout, error) {
	th := textHeight()

	left, top, right, bottom := pad, pad, pad, pad
	if o.yLabel != "" {
		left += th + pad
	}
	if o.xLabel != "" {
		top += th + pad
	}

	barW := 0
	if o.colorbar {
		barW = w / barFraction
		if barW < minBarWidth {
			barW = minBarWidth
		}
		right += barW + pad + maxWidth(barLabels) + 2*pad
	}

	// Grow the figure until the bare plot has one pixel per cell.
	if pw := w - left - right; pw < cols {
		w += cols - pw
	}
	if ph := h - top - bottom; ph < rows {
		h += rows - ph
	}
	if w > math.MaxInt16 || h > math.MaxInt16 {
		return layout{}, fmt.Errorf("%dx%d px for %dx%d cells: %w", w, h, rows, cols, ErrTooSmall)
	}
	lay := layout{w: w, h: h}

	rowBand, colBand := 0, 0
	if o.tickLabels {
		rowBand, colBand = maxWidth(rowLabels)+pad, maxWidth(colLabels)+pad
	}
	plotW, plotH := w-left-right, h-top-bottom

	// A band needs cells at least one text line thick along it and must leave
	// one pixel per cell across it. Both are first judged with the other band
	// in place; a rejected band frees room for the remaining one.
	rowFits := func(colOn bool) bool {
		return o.tickLabels && (plotH-bandIf(colOn, colBand))/rows >= th && plotW-rowBand >= cols
	}
	colFits := func(rowOn bool) bool {
		return o.tickLabels && (plotW-bandIf(rowOn, rowBand))/cols >= th && plotH-colBand >= rows
	}
	lay.rowTicks, lay.colTicks = rowFits(true), colFits(true)
	if !lay.rowTicks {
		lay.colTicks = colFits(false)
	}
	if !lay.colTicks {
		lay.rowTicks = rowFits(false)
	}

	if lay.rowTicks {
		left += rowBand
	}
	if lay.colTicks {
		top += colBand
	}
	lay.rowLabelRight = left - pad
	lay.colLabelBottom = top - pad

	lay.plot = image.Rect(left, top, w-right, h-bottom)
	if o.colorbar {
		lay.bar = image.Rect(lay.plot.Max.X+2*pad, lay.plot.Min.Y, lay.plot.Max.X+2*pad+barW, lay.plot.Max.Y)
	}

	if o.gridWidth > 0 {
		lay.gridPx = int(math.Round(o.gridWidth * float64(o.dpi) / 72))
		if lay.gridPx < 1 {
			lay.gridPx = 1
		}
	}
	return lay, nil
}

func bandIf(on bool, px int) int {
	if on {
		return px
	}
	return 0
}

// cellEdge returns the pixel offset of boundary k of n equal cells over span.
func cellEdge(start, span, k, n int) int { return start + k*span/n }

func paintCells(c *canvas, m *matrix.Dense, lay layout, cm *Colormap, vmin, vmax float64) {
	rows, cols := m.Rows(), m.Cols()
	den := vmax - vmin
	m.Do(func(i, j int, v float64) bool {
		if math.IsNaN(v) {
			return true
		}
		t := 0.0
		if den > 0 {
			t = (v - vmin) / den
		} else if math.IsInf(v, 1) {
			t = 1
		}
		x0 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j, cols)
		x1 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j+1, cols)
		y0 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i, rows)
		y1 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i+1, rows)
		c.fill(x0, y0, x1, y1, cm.At(t))
		return true
	})
}

// paintGrid draws separators between cells that are wide enough to keep
// some colour after the line is drawn.
func paintGrid(c *canvas, lay layout, rows, cols int) {
	g := lay.gridPx
	if g == 0 {
		return
	}
	if lay.plot.Dx()/cols > 2*g {
		for j := 1; j < cols; j++ {
			x := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j, cols)
			c.fill(x-g/2, lay.plot.Min.Y, x-g/2+g, lay.plot.Max.Y, colorGrid)
		}
	}
	if lay.plot.Dy()/rows > 2*g {
		for i := 1; i < rows; i++ {
			y := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i, rows)
			c.fill(lay.plot.Min.X, y-g/2, lay.plot.Max.X, y-g/2+g, colorGrid)
		}
	}
}

func paintColorbar(c *canvas, lay layout, cm *Colormap, labels []string) {
	b := lay.bar
	span := b.Dy() - 1
	if span < 1 {
		span = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := 1 - float64(y-b.Min.Y)/float64(span)
		c.fill(b.Min.X, y, b.Max.X, y+1, cm.At(t))
	}

	th := textHeight()
	for k, s := range labels {
		y := b.Min.Y + k*(b.Dy()-th)/(len(labels)-1)
		c.text(b.Max.X+pad, y, s, colorText)
	}
}

func paintText(c *canvas, lay layout, rows, cols int, rowLabels, colLabels []string, o Options) {
	th := textHeight()

	if o.xLabel != "" {
		x := lay.plot.Min.X + (lay.plot.Dx()-textWidth(o.xLabel))/2
		c.text(x, pad, o.xLabel, colorText)
	}
	if o.yLabel != "" {
		y := lay.plot.Min.Y + (lay.plot.Dy()+textWidth(o.yLabel))/2
		c.textUp(pad, y, o.yLabel, colorText)
	}

	if lay.rowTicks {
		for i, s := range rowLabels {
			y0 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i, rows)
			y1 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i+1, rows)
			c.text(lay.rowLabelRight-textWidth(s), (y0+y1-th)/2, s, colorText)
		}
	}
	if lay.colTicks {
		for j, s := range colLabels {
			x0 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j, cols)
			x1 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j+1, cols)
			c.textUp((x0+x1-th)/2, lay.colLabelBottom, s, colorText)
		}
	}
}
