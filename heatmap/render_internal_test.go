// SPDX-License-Identifier: MIT

package heatmap

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/correlategm/matrix"
)

// cellCenter returns the pixel in the middle of cell (i, j).
func cellCenter(lay layout, rows, cols, i, j int) image.Point {
	x0 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j, cols)
	x1 := cellEdge(lay.plot.Min.X, lay.plot.Dx(), j+1, cols)
	y0 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i, rows)
	y1 := cellEdge(lay.plot.Min.Y, lay.plot.Dy(), i+1, rows)
	return image.Pt((x0+x1)/2, (y0+y1)/2)
}

func renderWithLayout(t *testing.T, m *matrix.Dense, opts ...Option) (*image.RGBA, layout) {
	t.Helper()
	img, lay, err := render(m, nil, nil, opts...)
	require.NoError(t, err)
	return img, lay
}

func TestRender_CellColoursAndNaN(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFrom(2, 2, []float64{
		-1, 1,
		math.NaN(), 0,
	}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	img, lay := renderWithLayout(t, m)
	cm := Plasma()

	at := func(i, j int) [4]uint8 {
		p := cellCenter(lay, 2, 2, i, j)
		c := img.RGBAAt(p.X, p.Y)
		return [4]uint8{c.R, c.G, c.B, c.A}
	}
	rgba := func(t float64) [4]uint8 {
		c := cm.At(t)
		return [4]uint8{c.R, c.G, c.B, c.A}
	}

	assert.Equal(t, rgba(0), at(0, 0), "minimum maps to the low end")
	assert.Equal(t, rgba(1), at(0, 1), "maximum maps to the high end")
	assert.Equal(t, rgba(0.5), at(1, 1))
	bg := colorBG
	assert.Equal(t, [4]uint8{bg.R, bg.G, bg.B, bg.A}, at(1, 0), "NaN cell stays blank")
}

func TestRender_ConstantMatrixUsesLowColour(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFrom(1, 2, []float64{0.3, 0.3}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	img, lay := renderWithLayout(t, m)
	p := cellCenter(lay, 1, 2, 0, 1)
	assert.Equal(t, Plasma().At(0), img.RGBAAt(p.X, p.Y))
}

func TestRender_DrawsAxisTitle(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFrom(3, 3, make([]float64, 9))
	require.NoError(t, err)

	count := func(opts ...Option) int {
		img, _ := renderWithLayout(t, m, opts...)
		n := 0
		for y := 0; y < pad+textHeight(); y++ {
			for x := 0; x < img.Bounds().Dx(); x++ {
				if img.RGBAAt(x, y) == colorText {
					n++
				}
			}
		}
		return n
	}

	assert.Positive(t, count())
	assert.Zero(t, count(WithLabels("", ""), WithTickLabels(false), WithColorbar(false)))
}

func TestRender_TickLabelsNeedRoom(t *testing.T) {
	t.Parallel()

	small, err := matrix.NewDenseFrom(3, 3, make([]float64, 9))
	require.NoError(t, err)
	_, lay := renderWithLayout(t, small)
	assert.True(t, lay.rowTicks)
	assert.True(t, lay.colTicks)

	dense, err := matrix.NewDenseFrom(200, 200, make([]float64, 200*200))
	require.NoError(t, err)
	_, lay = renderWithLayout(t, dense, WithSize(5, 100))
	assert.False(t, lay.rowTicks)
	assert.False(t, lay.colTicks)
}

func TestRender_TickBandsLeaveRoomForCells(t *testing.T) {
	t.Parallel()

	long := []string{"NMF_component_00", "NMF_component_01", "NMF_component_02", "NMF_component_03", "NMF_component_04"}
	m, err := matrix.NewDenseFrom(42, 5, make([]float64, 42*5))
	require.NoError(t, err)

	img, lay, err := render(m, nil, long)
	require.NoError(t, err)
	assert.False(t, lay.colTicks, "column labels taller than the figure must be dropped")
	assert.GreaterOrEqual(t, lay.plot.Dy(), 42)
	assert.GreaterOrEqual(t, lay.plot.Dx(), 5)
	assert.True(t, lay.plot.In(img.Bounds()))
}

func TestRender_GrowsToOnePixelPerCell(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFrom(100, 10, make([]float64, 1000))
	require.NoError(t, err)

	img, lay, err := render(m, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, pixels(FigureHeight(100, 10), DefaultDPI))
	assert.Greater(t, img.Bounds().Dy(), 100)
	assert.GreaterOrEqual(t, lay.plot.Dy(), 100)
	assert.False(t, lay.rowTicks)
	assert.True(t, lay.plot.In(img.Bounds()))
}
