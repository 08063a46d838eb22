// SPDX-License-Identifier: MIT
// Package: cifti
//
// header.go - NIfTI-1 (348 byte) and NIfTI-2 (540 byte) header codec.
//
// Byte order is detected from sizeof_hdr: the field must read as 348 or 540
// in exactly one of the two byte orders. Only the fields this package needs
// to locate and scale the data block are kept; everything else is written as
// zero by the encoder.

package cifti

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Version identifies the header layout.
type Version int

// Supported header layouts.
const (
	NIfTI1 Version = 1
	NIfTI2 Version = 2
)

// Header sizes and magic strings.
const (
	nifti1HeaderSize = 348
	nifti2HeaderSize = 540

	// extensionFlagSize is the 4-byte "extension present" block after the header.
	extensionFlagSize = 4
)

var (
	nifti1Magic = []byte("n+1\x00")
	nifti2Magic = []byte("n+2\x00\r\n\x1a\n")
)

// Intent codes used by CIFTI-2 files.
const (
	IntentDenseScalar int32 = 3006

	intentCIFTIMin int32 = 3000
	intentCIFTIMax int32 = 3099
)

// Header holds the decoded subset of a NIfTI-1 or NIfTI-2 header.
type Header struct {
	Version    Version
	ByteOrder  binary.ByteOrder
	Datatype   int16
	Bitpix     int16
	Dim        [8]int64
	Pixdim     [8]float64
	VoxOffset  int64
	SclSlope   float64
	SclInter   float64
	IntentCode int32
	IntentName string
	Descrip    string
}

// Size returns the on-disk header size for h.Version.
func (h *Header) Size() int {
	if h.Version == NIfTI1 {
		return nifti1HeaderSize
	}
	return nifti2HeaderSize
}

// Rank returns dim[0], the number of used dimensions.
func (h *Header) Rank() int { return int(h.Dim[0]) }

// NumValues returns the product of the used extents, failing with
// ErrTruncated as soon as it would exceed limit. Extents must be positive
// (validate); the check divides instead of multiplying so it cannot overflow.
func (h *Header) NumValues(limit int64) (int64, error) {
	n := int64(1)
	for i := 1; i <= h.Rank(); i++ {
		if n > limit/h.Dim[i] {
			return 0, fmt.Errorf("dims %v exceed %d values: %w", h.Dim[1:h.Rank()+1], limit, ErrTruncated)
		}
		n *= h.Dim[i]
	}
	return n, nil
}

// Scaling reports the effective (slope, intercept) pair.
// A zero or non-finite slope disables scaling; a non-finite intercept counts as 0.
func (h *Header) Scaling() (slope, inter float64, ok bool) {
	if h.SclSlope == 0 || math.IsNaN(h.SclSlope) || math.IsInf(h.SclSlope, 0) {
		return 1, 0, false
	}
	inter = h.SclInter
	if math.IsNaN(inter) || math.IsInf(inter, 0) {
		inter = 0
	}
	return h.SclSlope, inter, true
}

// validate checks the dim[] array.
func (h *Header) validate() error {
	rank := h.Rank()
	if rank < 1 || rank > 7 {
		return fmt.Errorf("dim[0]=%d: %w", rank, ErrBadDimensions)
	}
	for i := 1; i <= rank; i++ {
		if h.Dim[i] <= 0 {
			return fmt.Errorf("dim[%d]=%d: %w", i, h.Dim[i], ErrBadDimensions)
		}
	}
	if h.VoxOffset < int64(h.Size()) {
		return fmt.Errorf("vox_offset=%d: %w", h.VoxOffset, ErrBadDimensions)
	}
	return nil
}

// detectHeader inspects sizeof_hdr and returns the layout and byte order.
func detectHeader(buf []byte) (Version, binary.ByteOrder, error) {
	if len(buf) < 4 {
		return 0, nil, ErrTruncated
	}
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		switch int32(order.Uint32(buf[0:4])) {
		case nifti1HeaderSize:
			return NIfTI1, order, nil
		case nifti2HeaderSize:
			return NIfTI2, order, nil
		}
	}
	return 0, nil, ErrBadMagic
}

// decodeHeader parses the header at the start of buf.
func decodeHeader(buf []byte) (*Header, error) {
	version, order, err := detectHeader(buf)
	if err != nil {
		return nil, err
	}
	h := &Header{Version: version, ByteOrder: order}
	if len(buf) < h.Size() {
		return nil, ErrTruncated
	}

	if version == NIfTI1 {
		decodeNIfTI1(h, buf)
	} else {
		decodeNIfTI2(h, buf)
	}

	magic := nifti2Magic
	off := 4
	if version == NIfTI1 {
		magic, off = nifti1Magic, 344
	}
	if !bytes.Equal(buf[off:off+len(magic)], magic) {
		return nil, ErrBadMagic
	}

	return h, nil
}

func decodeNIfTI1(h *Header, buf []byte) {
	o := h.ByteOrder
	f32 := func(off int) float64 { return float64(math.Float32frombits(o.Uint32(buf[off:]))) }

	for i := 0; i < 8; i++ {
		h.Dim[i] = int64(int16(o.Uint16(buf[40+2*i:])))
		h.Pixdim[i] = f32(76 + 4*i)
	}
	h.IntentCode = int32(int16(o.Uint16(buf[68:])))
	h.Datatype = int16(o.Uint16(buf[70:]))
	h.Bitpix = int16(o.Uint16(buf[72:]))
	h.VoxOffset = int64(f32(108))
	h.SclSlope = f32(112)
	h.SclInter = f32(116)
	h.Descrip = cString(buf[148:228])
	h.IntentName = cString(buf[328:344])
}

func decodeNIfTI2(h *Header, buf []byte) {
	o := h.ByteOrder
	f64 := func(off int) float64 { return math.Float64frombits(o.Uint64(buf[off:])) }

	h.Datatype = int16(o.Uint16(buf[12:]))
	h.Bitpix = int16(o.Uint16(buf[14:]))
	for i := 0; i < 8; i++ {
		h.Dim[i] = int64(o.Uint64(buf[16+8*i:]))
		h.Pixdim[i] = f64(104 + 8*i)
	}
	h.VoxOffset = int64(o.Uint64(buf[168:]))
	h.SclSlope = f64(176)
	h.SclInter = f64(184)
	h.Descrip = cString(buf[240:320])
	h.IntentCode = int32(o.Uint32(buf[504:]))
	h.IntentName = cString(buf[508:524])
}

// encodeHeader renders h into a fresh header-sized buffer.
func encodeHeader(h *Header) []byte {
	buf := make([]byte, h.Size())
	o := h.ByteOrder

	if h.Version == NIfTI1 {
		p32 := func(off int, v float64) { o.PutUint32(buf[off:], math.Float32bits(float32(v))) }
		o.PutUint32(buf[0:], nifti1HeaderSize)
		for i := 0; i < 8; i++ {
			o.PutUint16(buf[40+2*i:], uint16(int16(h.Dim[i])))
			p32(76+4*i, h.Pixdim[i])
		}
		o.PutUint16(buf[68:], uint16(int16(h.IntentCode)))
		o.PutUint16(buf[70:], uint16(h.Datatype))
		o.PutUint16(buf[72:], uint16(h.Bitpix))
		p32(108, float64(h.VoxOffset))
		p32(112, h.SclSlope)
		p32(116, h.SclInter)
		copy(buf[148:228], h.Descrip)
		copy(buf[328:344], h.IntentName)
		copy(buf[344:], nifti1Magic)
		return buf
	}

	p64 := func(off int, v float64) { o.PutUint64(buf[off:], math.Float64bits(v)) }
	o.PutUint32(buf[0:], nifti2HeaderSize)
	copy(buf[4:], nifti2Magic)
	o.PutUint16(buf[12:], uint16(h.Datatype))
	o.PutUint16(buf[14:], uint16(h.Bitpix))
	for i := 0; i < 8; i++ {
		o.PutUint64(buf[16+8*i:], uint64(h.Dim[i]))
		p64(104+8*i, h.Pixdim[i])
	}
	o.PutUint64(buf[168:], uint64(h.VoxOffset))
	p64(176, h.SclSlope)
	p64(184, h.SclInter)
	copy(buf[240:320], h.Descrip)
	o.PutUint32(buf[504:], uint32(h.IntentCode))
	copy(buf[508:524], h.IntentName)
	return buf
}

// cString returns b up to the first NUL.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
