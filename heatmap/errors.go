// SPDX-License-Identifier: MIT

package heatmap

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmall indicates the figure leaves no room for the cell grid.
	ErrTooSmall = errors.New("heatmap: figure too small for the plot area")

	// ErrLabelCount indicates tick label slices that do not match the matrix shape.
	ErrLabelCount = errors.New("heatmap: label count does not match matrix shape")

	// ErrColormap indicates an invalid colormap definition.
	ErrColormap = errors.New("heatmap: invalid colormap")
)

func heatmapErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
