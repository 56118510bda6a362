package volview

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFloat32Volume(t *testing.T, dims VolumeDims, values []float32) *VolumeAsset {
	t.Helper()
	data := make([]byte, len(values)*4)
	for i, val := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(val))
	}
	v, err := NewVolumeAsset(data, dims, VolumeFloat32)
	require.NoError(t, err)
	return v
}

func TestNewVolumeAsset_exactSizeOnly(t *testing.T) {
	dims := VolumeDims{Width: 4, Height: 3, Depth: 2}

	v, err := NewVolumeAsset(make([]byte, 24), dims, VolumeUint8)
	require.NoError(t, err)
	assert.Equal(t, dims, v.Dims)

	_, err = NewVolumeAsset(make([]byte, 23), dims, VolumeUint8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume size mismatch")
	assert.Contains(t, err.Error(), "got 23 bytes, want 24")

	_, err = NewVolumeAsset(make([]byte, 25), dims, VolumeUint8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume size mismatch")
}

func TestNewVolumeAsset_float32ElementSize(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 2, Depth: 2}

	_, err := NewVolumeAsset(make([]byte, 8), dims, VolumeFloat32)
	require.Error(t, err, "byte count right for uint8 but wrong for float32")

	_, err = NewVolumeAsset(make([]byte, 32), dims, VolumeFloat32)
	assert.NoError(t, err)
}

func TestNewVolumeAsset_rejectsDegenerateDims(t *testing.T) {
	for _, dims := range []VolumeDims{
		{Width: 0, Height: 4, Depth: 4},
		{Width: 4, Height: -1, Depth: 4},
		{Width: 4, Height: 4, Depth: 0},
	} {
		_, err := NewVolumeAsset(nil, dims, VolumeUint8)
		assert.Error(t, err, "%+v", dims)
	}
}

func TestLoadVolumeFile(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 2, Depth: 2}
	path := filepath.Join(t.TempDir(), "cube.raw")
	require.NoError(t, os.WriteFile(path, []byte{0, 32, 64, 96, 128, 160, 192, 255}, 0o644))

	v, err := LoadVolumeFile(path, dims, VolumeUint8)
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), v.ValueAt(1, 1, 1))

	_, err = LoadVolumeFile(path, VolumeDims{Width: 3, Height: 3, Depth: 3}, VolumeUint8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume size mismatch")

	_, err = LoadVolumeFile(filepath.Join(t.TempDir(), "missing.raw"), dims, VolumeUint8)
	assert.Error(t, err)
}

func TestValueAt_uint8Indexing(t *testing.T) {
	dims := VolumeDims{Width: 3, Height: 2, Depth: 2}
	data := make([]byte, dims.ElementCount())
	// mark one voxel per plane so a wrong stride shows up immediately
	data[(1*2+1)*3+2] = 255 // (x=2, y=1, z=1)
	data[(0*2+1)*3+0] = 51  // (x=0, y=1, z=0)

	v, err := NewVolumeAsset(data, dims, VolumeUint8)
	require.NoError(t, err)

	assert.Equal(t, float32(1.0), v.ValueAt(2, 1, 1))
	assert.InDelta(t, 0.2, float64(v.ValueAt(0, 1, 0)), 1e-6)
	assert.Equal(t, float32(0.0), v.ValueAt(0, 0, 0))
}

func TestValueAt_float32(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 1, Depth: 2}
	v := makeFloat32Volume(t, dims, []float32{0.25, -1.5, 3.0, 0.0})

	assert.Equal(t, float32(0.25), v.ValueAt(0, 0, 0))
	assert.Equal(t, float32(-1.5), v.ValueAt(1, 0, 0))
	assert.Equal(t, float32(3.0), v.ValueAt(0, 0, 1))
}

func TestParseVolumeFormat(t *testing.T) {
	for _, s := range []string{"uint8", "u8", ""} {
		f, err := ParseVolumeFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, VolumeUint8, f)
	}
	for _, s := range []string{"float32", "f32"} {
		f, err := ParseVolumeFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, VolumeFloat32, f)
	}

	_, err := ParseVolumeFormat("int16")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown volume format")
}

func TestComputeStats(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 2, Depth: 1}
	v := makeFloat32Volume(t, dims, []float32{1, 2, 3, 4})

	stats := ComputeStats(v)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 4.0, stats.Max)
	assert.InDelta(t, 2.5, stats.Mean, 1e-9)
	assert.InDelta(t, 1.2909944, stats.StdDev, 1e-6)
}

func TestComputeStats_constantVolume(t *testing.T) {
	dims := VolumeDims{Width: 4, Height: 4, Depth: 4}
	data := make([]byte, dims.ElementCount())
	for i := range data {
		data[i] = 128
	}
	v, err := NewVolumeAsset(data, dims, VolumeUint8)
	require.NoError(t, err)

	stats := ComputeStats(v)
	assert.Equal(t, stats.Min, stats.Max)
	assert.InDelta(t, 128.0/255.0, stats.Mean, 1e-6)
	assert.Equal(t, 0.0, stats.StdDev)
}

func TestNormalize_float32(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 2, Depth: 1}
	v := makeFloat32Volume(t, dims, []float32{-100, 0, 100, 300})

	before := v.Normalize()
	assert.Equal(t, -100.0, before.Min)
	assert.Equal(t, 300.0, before.Max)

	after := ComputeStats(v)
	assert.Equal(t, 0.0, after.Min)
	assert.Equal(t, 1.0, after.Max)
	assert.InDelta(t, 0.25, float64(v.ValueAt(0, 1, 0)), 1e-6)
}

func TestNormalize_uint8IsNoop(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 1, Depth: 1}
	v, err := NewVolumeAsset([]byte{10, 200}, dims, VolumeUint8)
	require.NoError(t, err)

	v.Normalize()
	assert.Equal(t, []byte{10, 200}, v.Data)
}

func TestNormalize_constantVolumeIsNoop(t *testing.T) {
	dims := VolumeDims{Width: 2, Height: 1, Depth: 1}
	v := makeFloat32Volume(t, dims, []float32{7, 7})

	v.Normalize()
	assert.Equal(t, float32(7), v.ValueAt(0, 0, 0))
	assert.Equal(t, float32(7), v.ValueAt(1, 0, 0))
}
