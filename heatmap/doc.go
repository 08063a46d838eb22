// SPDX-License-Identifier: MIT

// Package heatmap renders a correlation matrix as an annotated PNG heatmap.
//
// The figure follows the seaborn defaults of the original analysis notebooks:
// plasma colormap scaled between the data minimum and maximum, thin white
// separators between cells, a colorbar on the right, column tick labels on
// top and row tick labels on the left. Undefined (NaN) cells are left blank.
//
// Text is drawn with tinyfont bitmap fonts through a drivers.Displayer
// adapter over *image.RGBA, so rendering needs no system fonts.
//
// Figure size: width defaults to 10 inches at 100 dpi, height follows
// FigureHeight unless WithHeight is given. A figure with fewer pixels than
// rows or columns grows to one pixel per cell.
package heatmap
