// SPDX-License-Identifier: MIT

package heatmap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// plasmaStops samples matplotlib's plasma map at t = 0, 1/8, ..., 1.
var plasmaStops = []string{
	"#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778",
	"#e56b5d", "#f89540", "#fdc527", "#f0f921",
}

// Colormap maps [0, 1] onto colours by piecewise-linear RGB interpolation
// between evenly spaced stops.
type Colormap struct {
	stops []colorful.Color
}

// NewColormap parses hex stops ("#rrggbb"). At least two are required.
func NewColormap(hex ...string) (*Colormap, error) {
	if len(hex) < 2 {
		return nil, ErrColormap
	}
	cm := &Colormap{stops: make([]colorful.Color, len(hex))}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, heatmapErrorf("NewColormap", ErrColormap)
		}
		cm.stops[i] = c
	}
	return cm, nil
}

// Plasma returns the default colormap.
func Plasma() *Colormap {
	cm, err := NewColormap(plasmaStops...)
	if err != nil {
		panic(err) // constant table
	}
	return cm
}

// At returns the colour for t; t is clamped into [0, 1] and NaN maps to 0.
func (cm *Colormap) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	seg := t * float64(len(cm.stops)-1)
	k := int(seg)
	if k >= len(cm.stops)-1 {
		k = len(cm.stops) - 2
	}
	c := cm.stops[k].BlendRgb(cm.stops[k+1], seg-float64(k)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
