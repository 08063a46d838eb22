// SPDX-License-Identifier: MIT
// Package: cifti
//
// datatype.go - NIfTI datatype codes and the raw <-> float64 converters.

package cifti

import (
	"encoding/binary"
	"fmt"
	"math"
)

// NIfTI datatype codes with a real-valued decoding.
const (
	DTUint8   int16 = 2
	DTInt16   int16 = 4
	DTInt32   int16 = 8
	DTFloat32 int16 = 16
	DTFloat64 int16 = 64
	DTInt8    int16 = 256
	DTUint16  int16 = 512
	DTUint32  int16 = 768
	DTInt64   int16 = 1024
	DTUint64  int16 = 1280
)

// datatypeSize returns the element size in bytes, or ErrUnsupportedDatatype.
func datatypeSize(dt int16) (int, error) {
	switch dt {
	case DTUint8, DTInt8:
		return 1, nil
	case DTInt16, DTUint16:
		return 2, nil
	case DTInt32, DTUint32, DTFloat32:
		return 4, nil
	case DTInt64, DTUint64, DTFloat64:
		return 8, nil
	}
	return 0, fmt.Errorf("datatype %d: %w", dt, ErrUnsupportedDatatype)
}

// decodeValues converts n raw elements of type dt into float64.
func decodeValues(raw []byte, o binary.ByteOrder, dt int16, n int) ([]float64, error) {
	size, err := datatypeSize(dt)
	if err != nil {
		return nil, err
	}
	if len(raw) < n*size {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n*size, len(raw), ErrTruncated)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		b := raw[i*size:]
		switch dt {
		case DTUint8:
			out[i] = float64(b[0])
		case DTInt8:
			out[i] = float64(int8(b[0]))
		case DTInt16:
			out[i] = float64(int16(o.Uint16(b)))
		case DTUint16:
			out[i] = float64(o.Uint16(b))
		case DTInt32:
			out[i] = float64(int32(o.Uint32(b)))
		case DTUint32:
			out[i] = float64(o.Uint32(b))
		case DTFloat32:
			out[i] = float64(math.Float32frombits(o.Uint32(b)))
		case DTInt64:
			out[i] = float64(int64(o.Uint64(b)))
		case DTUint64:
			out[i] = float64(o.Uint64(b))
		case DTFloat64:
			out[i] = math.Float64frombits(o.Uint64(b))
		}
	}

	return out, nil
}

// encodeValues is the inverse of decodeValues. Integer targets are rounded
// to nearest; NaN becomes 0 for them.
func encodeValues(vals []float64, o binary.ByteOrder, dt int16) ([]byte, error) {
	size, err := datatypeSize(dt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(vals)*size)
	for i, v := range vals {
		b := out[i*size:]
		r := v
		if dt != DTFloat32 && dt != DTFloat64 {
			if math.IsNaN(v) {
				r = 0
			}
			r = math.Round(r)
		}
		switch dt {
		case DTUint8:
			b[0] = uint8(r)
		case DTInt8:
			b[0] = uint8(int8(r))
		case DTInt16:
			o.PutUint16(b, uint16(int16(r)))
		case DTUint16:
			o.PutUint16(b, uint16(r))
		case DTInt32:
			o.PutUint32(b, uint32(int32(r)))
		case DTUint32:
			o.PutUint32(b, uint32(r))
		case DTFloat32:
			o.PutUint32(b, math.Float32bits(float32(v)))
		case DTInt64:
			o.PutUint64(b, uint64(int64(r)))
		case DTUint64:
			o.PutUint64(b, uint64(r))
		case DTFloat64:
			o.PutUint64(b, math.Float64bits(v))
		}
	}

	return out, nil
}
