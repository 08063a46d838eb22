// SPDX-License-Identifier: MIT

package heatmap

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// labelFont is the bitmap font for every text element.
var labelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// canvas exposes an *image.RGBA as a tinyfont display.
type canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*canvas)(nil)

func newCanvas(w, h int, bg color.RGBA) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return &canvas{img: img}
}

func (c *canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return clampInt16(b.Dx()), clampInt16(b.Dy())
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col) // out of bounds is a no-op
}

func (c *canvas) Display() error { return nil }

// fill paints the half-open rectangle [x0,x1)×[y0,y1), clipped to the image.
func (c *canvas) fill(x0, y0, x1, y1 int, col color.RGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// textWidth returns the advance width of s in pixels.
func textWidth(s string) int {
	_, outbox := tinyfont.LineWidth(labelFont, s)
	return int(outbox)
}

// textHeight is the line height of labelFont.
func textHeight() int { return int(labelFont.GetYAdvance()) }

// textAscent approximates the baseline offset from the top of a line.
func textAscent() int { return textHeight() * 3 / 4 }

// text draws s with its top-left corner at (x, y).
func (c *canvas) text(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, labelFont, int16(x), int16(y+textAscent()), s, col)
}

// textUp draws s rotated to read bottom-to-top, its glyph tops facing
// left, with the start of the string at the bottom (x, y).
func (c *canvas) textUp(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLineRotated(c, labelFont, int16(x+textAscent()), int16(y), s, col, tinyfont.ROTATION_270)
}

func clampInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
