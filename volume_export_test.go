package volview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientVolume(t *testing.T, w, h, d int) *VolumeAsset {
	t.Helper()
	dims := VolumeDims{Width: w, Height: h, Depth: d}
	data := make([]byte, dims.ElementCount())
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[(z*h+y)*w+x] = uint8((x * 255) / (w - 1))
			}
		}
	}
	v, err := NewVolumeAsset(data, dims, VolumeUint8)
	require.NoError(t, err)
	return v
}

func TestSliceImage(t *testing.T) {
	v := gradientVolume(t, 8, 4, 2)

	img, err := SliceImage(v, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	assert.Equal(t, uint8(0), img.Pix[0])
	assert.Equal(t, uint8(255), img.Pix[7])
}

func TestSliceImage_outOfRange(t *testing.T) {
	v := gradientVolume(t, 4, 4, 2)

	for _, z := range []int{-1, 2, 100} {
		_, err := SliceImage(v, z)
		require.Error(t, err, "z=%d", z)
		assert.Contains(t, err.Error(), "out of range")
	}
}

func TestExportSlicePNG_roundTrip(t *testing.T) {
	v := gradientVolume(t, 8, 4, 2)
	path := filepath.Join(t.TempDir(), "out", "slice.png")

	require.NoError(t, ExportSlicePNG(v, 0, 0, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestExportSlicePNG_previewScalesLongerEdge(t *testing.T) {
	v := gradientVolume(t, 16, 8, 1)
	path := filepath.Join(t.TempDir(), "slice.png")

	require.NoError(t, ExportSlicePNG(v, 0, 4, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestExportSlicePNG_previewScalesWhenShorterEdgeMatches(t *testing.T) {
	v := gradientVolume(t, 16, 4, 1)
	path := filepath.Join(t.TempDir(), "slice.png")

	require.NoError(t, ExportSlicePNG(v, 0, 4, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx(), "longer edge must be scaled to the preview size")
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestExportSlicePNG_nativeSizeWhenLongerEdgeMatches(t *testing.T) {
	v := gradientVolume(t, 8, 4, 1)
	path := filepath.Join(t.TempDir(), "slice.png")

	require.NoError(t, ExportSlicePNG(v, 0, 8, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestExportSlicePNG_badSlice(t *testing.T) {
	v := gradientVolume(t, 4, 4, 1)
	err := ExportSlicePNG(v, 5, 0, filepath.Join(t.TempDir(), "slice.png"))
	assert.Error(t, err)
}
