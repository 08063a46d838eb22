// SPDX-License-Identifier: MIT
// Package: cifti
//
// encode.go - writing an Image back to NIfTI-1/NIfTI-2.
//
// The writer mirrors Decode: an image with map names, brain models or a
// CIFTI intent is written as a dscalar (dim = [6,1,1,1,1,rows,cols,1],
// column-major, XML extension); anything else as a plain volume whose
// spatial dims come from Header.Dim when they match the column count.

package cifti

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/katalvlaran/correlategm/matrix"
)

// extensionAlign is the NIfTI requirement on esize.
const extensionAlign = 16

// Save writes img to path; a ".gz" suffix selects gzip compression.
func Save(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cifti: create %s: %w", path, err)
	}

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	err = Encode(w, img)
	if zw != nil {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cifti: save %s: %w", path, err)
	}
	return nil
}

// Encode writes img uncompressed.
// Zero header fields take defaults: NIfTI-2, little-endian, float32.
// Scaling in the header is inverted before conversion so that Decode
// returns the same values.
func Encode(w io.Writer, img *Image) error {
	if img == nil || img.Data == nil {
		return ciftiErrorf("encode", matrix.ErrNilMatrix)
	}

	h := img.Header
	if h.Version == 0 {
		h.Version = NIfTI2
	}
	if h.ByteOrder == nil {
		h.ByteOrder = binary.LittleEndian
	}
	if h.Datatype == 0 {
		h.Datatype = DTFloat32
	}
	size, err := datatypeSize(h.Datatype)
	if err != nil {
		return ciftiErrorf("encode", err)
	}
	h.Bitpix = int16(size * 8)

	rows, cols := img.Data.Rows(), img.Data.Cols()
	asCIFTI := len(img.Maps) > 0 || len(img.Models) > 0 ||
		(h.IntentCode >= intentCIFTIMin && h.IntentCode <= intentCIFTIMax)

	var exts []Extension
	if asCIFTI {
		h.Dim = [8]int64{6, 1, 1, 1, 1, int64(rows), int64(cols), 1}
		if h.IntentCode == 0 {
			h.IntentCode = IntentDenseScalar
			h.IntentName = "ConnDenseScalar"
		}
		doc, err := marshalCIFTIXML(img.Maps, img.Models)
		if err != nil {
			return ciftiErrorf("encode", err)
		}
		exts = append(exts, Extension{Code: ExtensionCIFTI, Data: doc})
	} else {
		h.Dim = volumeDims(h.Dim, rows, cols)
	}
	if h.Version == NIfTI1 {
		for i, d := range h.Dim {
			if d > math.MaxInt16 {
				return ciftiErrorf("encode", fmt.Errorf("nifti-1 dim[%d]=%d exceeds int16: %w", i, d, ErrBadDimensions))
			}
		}
	}
	for _, e := range img.Extensions {
		if e.Code != ExtensionCIFTI {
			exts = append(exts, e)
		}
	}

	var ext bytes.Buffer
	for _, e := range exts {
		esize := 8 + len(e.Data)
		if pad := esize % extensionAlign; pad != 0 {
			esize += extensionAlign - pad
		}
		block := make([]byte, esize)
		h.ByteOrder.PutUint32(block[0:], uint32(esize))
		h.ByteOrder.PutUint32(block[4:], uint32(e.Code))
		copy(block[8:], e.Data)
		ext.Write(block)
	}
	h.VoxOffset = int64(h.Size() + extensionFlagSize + ext.Len())

	vals := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		row, _ := img.Data.Row(i)
		vals = append(vals, row...)
	}
	if asCIFTI {
		vals = rowToColumnMajor(vals, rows, cols)
	}
	if slope, inter, ok := h.Scaling(); ok {
		for i := range vals {
			vals[i] = (vals[i] - inter) / slope
		}
	}
	data, err := encodeValues(vals, h.ByteOrder, h.Datatype)
	if err != nil {
		return ciftiErrorf("encode", err)
	}

	flag := make([]byte, extensionFlagSize)
	if ext.Len() > 0 {
		flag[0] = 1
	}
	for _, chunk := range [][]byte{encodeHeader(&h), flag, ext.Bytes(), data} {
		if _, err = w.Write(chunk); err != nil {
			return ciftiErrorf("encode", err)
		}
	}
	return nil
}

// volumeDims keeps prev's spatial extents when they multiply to cols.
func volumeDims(prev [8]int64, rows, cols int) [8]int64 {
	x, y, z := prev[1], prev[2], prev[3]
	if x <= 0 || y <= 0 || z <= 0 || x*y*z != int64(cols) {
		x, y, z = int64(cols), 1, 1
	}
	return [8]int64{4, x, y, z, int64(rows), 1, 1, 1}
}
