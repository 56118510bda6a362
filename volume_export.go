package volview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// SliceImage renders the cross-section at depth index z as a grayscale image
// in the volume's native resolution.
func SliceImage(v *VolumeAsset, z int) (*image.Gray, error) {
	if z < 0 || z >= v.Dims.Depth {
		return nil, fmt.Errorf("slice index %d out of range [0,%d)", z, v.Dims.Depth)
	}
	img := image.NewGray(image.Rect(0, 0, v.Dims.Width, v.Dims.Height))
	for y := 0; y < v.Dims.Height; y++ {
		for x := 0; x < v.Dims.Width; x++ {
			img.Pix[y*img.Stride+x] = uint8(clamp01(v.ValueAt(x, y, z)) * 255.0)
		}
	}
	return img, nil
}

// ExportSlicePNG writes the slice at depth index z as a PNG, scaled so its
// longer edge equals previewSize (0 keeps the native resolution). The output
// directory is created if needed.
func ExportSlicePNG(v *VolumeAsset, z int, previewSize int, path string) error {
	src, err := SliceImage(v, z)
	if err != nil {
		return err
	}

	var out image.Image = src
	if previewSize > 0 && max(src.Bounds().Dx(), src.Bounds().Dy()) != previewSize {
		w, h := src.Bounds().Dx(), src.Bounds().Dy()
		if w >= h {
			h = h * previewSize / w
			w = previewSize
		} else {
			w = w * previewSize / h
			h = previewSize
		}
		scaled := image.NewGray(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
