// SPDX-License-Identifier: MIT
// Package: cifti
//
// load.go - reading a NIfTI/CIFTI file into a matrix.
//
// Layout rules:
//   - CIFTI (ecode 32 extension or a CIFTI intent code): the matrix is
//     dim[5]×dim[6]; storage is column-major, element (i,j) at i + j*dim[5].
//   - Plain NIfTI: rows = product of dim[4..], cols = dim[1]*dim[2]*dim[3];
//     the volume index varies fastest, so storage is already row-major.

package cifti

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/correlategm/matrix"
)

// gzipMagic is the two-byte gzip member header.
var gzipMagic = [2]byte{0x1f, 0x8b}

// Extension is a raw NIfTI header extension.
type Extension struct {
	Code int32
	Data []byte
}

// Image is a decoded scalar file.
//   - Data has one row per map (component, tract) and one column per spatial sample.
//   - Maps and Models are filled from the CIFTI XML when present.
type Image struct {
	Header     Header
	Extensions []Extension
	Data       *matrix.Dense
	Maps       []string
	Models     []BrainModel
}

// IsCIFTI reports whether the image uses the CIFTI matrix layout.
func (img *Image) IsCIFTI() bool {
	for _, e := range img.Extensions {
		if e.Code == ExtensionCIFTI {
			return true
		}
	}
	return img.Header.IntentCode >= intentCIFTIMin && img.Header.IntentCode <= intentCIFTIMax
}

// MapName returns the name of row i, or its index when the file carries none.
func (img *Image) MapName(i int) string {
	if i >= 0 && i < len(img.Maps) && img.Maps[i] != "" {
		return img.Maps[i]
	}
	return strconv.Itoa(i)
}

// MapNames returns one label per row (see MapName).
func (img *Image) MapNames() []string {
	if img.Data == nil {
		return nil
	}
	out := make([]string, img.Data.Rows())
	for i := range out {
		out[i] = img.MapName(i)
	}
	return out
}

// Load opens path and decodes it. Gzip compression is detected from content.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cifti: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cifti: load %s: %w", path, err)
	}
	return img, nil
}

// Decode reads a whole NIfTI-1/NIfTI-2 stream (optionally gzip-compressed).
// Implementation:
//   - Stage 1: sniff the gzip magic and wrap the reader if needed.
//   - Stage 2: decode and validate the header.
//   - Stage 3: collect extensions up to vox_offset; parse CIFTI XML.
//   - Stage 4: convert the data block, reorder column-major CIFTI storage,
//     apply scl_slope/scl_inter.
//
// NaN samples are kept; the returned matrix has NaN validation disabled.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, ciftiErrorf("gzip", err)
		}
		defer zr.Close()
		src = zr
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, ciftiErrorf("read", err)
	}

	h, err := decodeHeader(buf)
	if err != nil {
		return nil, ciftiErrorf("header", err)
	}
	if err = h.validate(); err != nil {
		return nil, ciftiErrorf("header", err)
	}

	img := &Image{Header: *h}
	if img.Extensions, err = decodeExtensions(buf, h); err != nil {
		return nil, ciftiErrorf("extensions", err)
	}
	for _, e := range img.Extensions {
		if e.Code != ExtensionCIFTI {
			continue
		}
		if img.Maps, img.Models, err = parseCIFTIXML(e.Data); err != nil {
			return nil, ciftiErrorf("cifti xml", err)
		}
	}

	// Bound the dims by the bytes actually present before any product is
	// taken in int; a crafted header cannot wrap the shape.
	size, err := datatypeSize(h.Datatype)
	if err != nil {
		return nil, ciftiErrorf("data", err)
	}
	if int64(len(buf)) < h.VoxOffset {
		return nil, ciftiErrorf("data", ErrTruncated)
	}
	if _, err = h.NumValues((int64(len(buf)) - h.VoxOffset) / int64(size)); err != nil {
		return nil, ciftiErrorf("data", err)
	}

	rows, cols, err := matrixShape(img)
	if err != nil {
		return nil, ciftiErrorf("shape", err)
	}
	vals, err := decodeValues(buf[h.VoxOffset:], h.ByteOrder, h.Datatype, rows*cols)
	if err != nil {
		return nil, ciftiErrorf("data", err)
	}
	if img.IsCIFTI() {
		vals = columnToRowMajor(vals, rows, cols)
	}

	img.Data, err = matrix.NewDenseFrom(rows, cols, vals, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, ciftiErrorf("data", err)
	}
	if slope, inter, ok := h.Scaling(); ok {
		// Policy is off, so Apply cannot fail.
		_ = img.Data.Apply(func(_, _ int, v float64) float64 { return v*slope + inter })
	}

	return img, nil
}

// decodeExtensions walks the extension chain between the header and vox_offset.
func decodeExtensions(buf []byte, h *Header) ([]Extension, error) {
	off := int64(h.Size())
	if int64(len(buf)) < off+extensionFlagSize || h.VoxOffset < off+extensionFlagSize {
		return nil, nil
	}
	if buf[off] == 0 {
		return nil, nil
	}
	off += extensionFlagSize

	var exts []Extension
	for off+8 <= h.VoxOffset {
		if int64(len(buf)) < off+8 {
			return nil, ErrTruncated
		}
		size := int64(int32(h.ByteOrder.Uint32(buf[off:])))
		code := int32(h.ByteOrder.Uint32(buf[off+4:]))
		if size < 8 || off+size > h.VoxOffset {
			return nil, fmt.Errorf("esize=%d at %d: %w", size, off, ErrBadExtension)
		}
		if int64(len(buf)) < off+size {
			return nil, ErrTruncated
		}
		data := make([]byte, size-8)
		copy(data, buf[off+8:off+size])
		exts = append(exts, Extension{Code: code, Data: data})
		off += size
	}

	return exts, nil
}

// matrixShape maps the NIfTI dims onto (rows, cols).
func matrixShape(img *Image) (rows, cols int, err error) {
	d := img.Header.Dim
	if img.IsCIFTI() {
		if img.Header.Rank() < 6 {
			return 0, 0, fmt.Errorf("cifti rank %d: %w", img.Header.Rank(), ErrBadDimensions)
		}
		for i := 1; i <= 4; i++ {
			if d[i] != 1 {
				return 0, 0, fmt.Errorf("cifti dim[%d]=%d: %w", i, d[i], ErrBadDimensions)
			}
		}
		for i := 7; i <= img.Header.Rank(); i++ {
			if d[i] != 1 {
				return 0, 0, fmt.Errorf("cifti dim[%d]=%d: %w", i, d[i], ErrBadDimensions)
			}
		}
		return int(d[5]), int(d[6]), nil
	}

	cols = 1
	for i := 1; i <= 3 && i <= img.Header.Rank(); i++ {
		cols *= int(d[i])
	}
	rows = 1
	for i := 4; i <= img.Header.Rank(); i++ {
		rows *= int(d[i])
	}
	return rows, cols, nil
}

// columnToRowMajor reorders a column-major rows×cols buffer.
func columnToRowMajor(vals []float64, rows, cols int) []float64 {
	out := make([]float64, len(vals))
	for j := 0; j < cols; j++ {
		base := j * rows
		for i := 0; i < rows; i++ {
			out[i*cols+j] = vals[base+i]
		}
	}
	return out
}

// rowToColumnMajor is the inverse of columnToRowMajor.
func rowToColumnMajor(vals []float64, rows, cols int) []float64 {
	out := make([]float64, len(vals))
	for i := 0; i < rows; i++ {
		base := i * cols
		for j := 0; j < cols; j++ {
			out[j*rows+i] = vals[base+j]
		}
	}
	return out
}
