// SPDX-License-Identifier: MIT

package cifti_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/correlategm/cifti"
	"github.com/katalvlaran/correlategm/matrix"
)

func sampleImage(t *testing.T) *cifti.Image {
	t.Helper()
	data, err := matrix.NewDenseFrom(3, 4, []float64{
		0.5, 1, 1.5, 2,
		-1, 0, math.NaN(), 3,
		10, 20, 30, 40,
	}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	return &cifti.Image{
		Data: data,
		Maps: []string{"CST_L", "", "AF_R"},
		Models: []cifti.BrainModel{
			{IndexOffset: 0, IndexCount: 2, ModelType: "CIFTI_MODEL_TYPE_SURFACE", BrainStructure: "CIFTI_STRUCTURE_CORTEX_LEFT", SurfaceNumberOfVertices: 32492},
			{IndexOffset: 2, IndexCount: 2, ModelType: "CIFTI_MODEL_TYPE_SURFACE", BrainStructure: "CIFTI_STRUCTURE_CORTEX_RIGHT", SurfaceNumberOfVertices: 32492},
		},
	}
}

func requireSameData(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllCloseEqualNaN(got, want, 0, 0)
	require.NoError(t, err)
	require.Truef(t, ok, "want:\n%v\ngot:\n%v", want, got)
}

func TestSaveLoad_DScalarRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"maps.dscalar.nii", "maps.dscalar.nii.gz"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			img := sampleImage(t)
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, cifti.Save(path, img))

			got, err := cifti.Load(path)
			require.NoError(t, err)
			assert.True(t, got.IsCIFTI())
			assert.Equal(t, cifti.IntentDenseScalar, got.Header.IntentCode)
			assert.Equal(t, []string{"CST_L", "", "AF_R"}, got.Maps)
			assert.Equal(t, []string{"CST_L", "1", "AF_R"}, got.MapNames())
			assert.Equal(t, img.Models, got.Models)
			requireSameData(t, img.Data, got.Data)
		})
	}
}

func TestSaveLoad_GzipIsCompressed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.nii.gz")
	require.NoError(t, cifti.Save(path, sampleImage(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
}

func TestEncodeDecode_VersionsAndByteOrders(t *testing.T) {
	t.Parallel()

	for _, v := range []cifti.Version{cifti.NIfTI1, cifti.NIfTI2} {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			img := sampleImage(t)
			img.Header = cifti.Header{Version: v, ByteOrder: order, Datatype: cifti.DTFloat64}

			var buf bytes.Buffer
			require.NoError(t, cifti.Encode(&buf, img))

			got, err := cifti.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, v, got.Header.Version)
			assert.Equal(t, order, got.Header.ByteOrder)
			requireSameData(t, img.Data, got.Data)
		}
	}
}

func TestEncodeDecode_PlainVolumeKeepsSpatialDims(t *testing.T) {
	t.Parallel()

	data, err := matrix.FromRows([][]float64{{1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1}})
	require.NoError(t, err)
	img := &cifti.Image{
		Header: cifti.Header{Datatype: cifti.DTInt16, Dim: [8]int64{3, 1, 2, 3}, SclSlope: 0.5},
		Data:   data,
	}

	var buf bytes.Buffer
	require.NoError(t, cifti.Encode(&buf, img))
	got, err := cifti.Decode(&buf)
	require.NoError(t, err)

	assert.False(t, got.IsCIFTI())
	assert.Equal(t, [8]int64{4, 1, 2, 3, 2, 1, 1, 1}, got.Header.Dim)
	requireSameData(t, data, got.Data)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	var good bytes.Buffer
	require.NoError(t, cifti.Encode(&good, sampleImage(t)))
	raw := good.Bytes()

	t.Run("empty", func(t *testing.T) {
		_, err := cifti.Decode(bytes.NewReader(nil))
		assert.ErrorIs(t, err, cifti.ErrTruncated)
	})
	t.Run("bad sizeof_hdr", func(t *testing.T) {
		_, err := cifti.Decode(bytes.NewReader(make([]byte, 600)))
		assert.ErrorIs(t, err, cifti.ErrBadMagic)
	})
	t.Run("bad magic string", func(t *testing.T) {
		b := append([]byte(nil), raw...)
		b[4] = 'x'
		_, err := cifti.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, cifti.ErrBadMagic)
	})
	t.Run("truncated header", func(t *testing.T) {
		_, err := cifti.Decode(bytes.NewReader(raw[:100]))
		assert.ErrorIs(t, err, cifti.ErrTruncated)
	})
	t.Run("truncated data", func(t *testing.T) {
		_, err := cifti.Decode(bytes.NewReader(raw[:len(raw)-3]))
		assert.ErrorIs(t, err, cifti.ErrTruncated)
	})
	t.Run("unsupported datatype", func(t *testing.T) {
		b := append([]byte(nil), raw...)
		binary.LittleEndian.PutUint16(b[12:], 32) // complex64
		_, err := cifti.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, cifti.ErrUnsupportedDatatype)
	})
	t.Run("bad rank", func(t *testing.T) {
		b := append([]byte(nil), raw...)
		binary.LittleEndian.PutUint64(b[16:], 9)
		_, err := cifti.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, cifti.ErrBadDimensions)
	})
	t.Run("dims overflow int", func(t *testing.T) {
		b := append([]byte(nil), raw...)
		binary.LittleEndian.PutUint64(b[16+5*8:], 1<<32) // dim[5]
		binary.LittleEndian.PutUint64(b[16+6*8:], 1<<32) // dim[6]
		_, err := cifti.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, cifti.ErrTruncated)
	})
	t.Run("dims beyond data", func(t *testing.T) {
		b := append([]byte(nil), raw...)
		binary.LittleEndian.PutUint64(b[16+6*8:], 1<<20) // dim[6]
		_, err := cifti.Decode(bytes.NewReader(b))
		assert.ErrorIs(t, err, cifti.ErrTruncated)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := cifti.Load(filepath.Join(t.TempDir(), "nope.nii"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEncode_NIfTI1RejectsWideRows(t *testing.T) {
	t.Parallel()

	// A full CIFTI grayordinate row (91282) does not fit a NIfTI-1 int16 dim.
	d, err := matrix.NewDense(1, 91282)
	require.NoError(t, err)
	img := &cifti.Image{Header: cifti.Header{Version: cifti.NIfTI1}, Data: d, Maps: []string{"map"}}

	var buf bytes.Buffer
	err = cifti.Encode(&buf, img)
	assert.ErrorIs(t, err, cifti.ErrBadDimensions)
	assert.Zero(t, buf.Len())

	img.Header.Version = cifti.NIfTI2
	require.NoError(t, cifti.Encode(&buf, img))
	got, err := cifti.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 91282, got.Data.Cols())
}
