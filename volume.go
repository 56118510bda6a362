package volview

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// VolumeFormat is the scalar element type of a raw dataset.
type VolumeFormat int

const (
	VolumeUint8 VolumeFormat = iota
	VolumeFloat32
)

func ParseVolumeFormat(s string) (VolumeFormat, error) {
	switch s {
	case "uint8", "u8", "":
		return VolumeUint8, nil
	case "float32", "f32":
		return VolumeFloat32, nil
	}
	return 0, fmt.Errorf("unknown volume format %q", s)
}

func (f VolumeFormat) ElementSize() int {
	if f == VolumeFloat32 {
		return 4
	}
	return 1
}

func (f VolumeFormat) String() string {
	if f == VolumeFloat32 {
		return "float32"
	}
	return "uint8"
}

type VolumeDims struct {
	Width  int
	Height int
	Depth  int
}

func (d VolumeDims) ElementCount() int {
	return d.Width * d.Height * d.Depth
}

func (d VolumeDims) valid() bool {
	return d.Width > 0 && d.Height > 0 && d.Depth > 0
}

// VolumeAsset is a raw scalar field, row-major X fastest, uploaded once to
// the GPU and immutable for the process lifetime.
type VolumeAsset struct {
	Dims   VolumeDims
	Format VolumeFormat
	Data   []byte
}

// NewVolumeAsset wraps a raw blob after checking that its byte count matches
// the declared dimensions exactly. A headerless file carries no metadata, so
// a length mismatch is the only detectable form of corruption and must never
// be papered over by truncation or padding.
func NewVolumeAsset(data []byte, dims VolumeDims, format VolumeFormat) (*VolumeAsset, error) {
	if !dims.valid() {
		return nil, fmt.Errorf("invalid volume dimensions %dx%dx%d", dims.Width, dims.Height, dims.Depth)
	}
	want := dims.ElementCount() * format.ElementSize()
	if len(data) != want {
		return nil, fmt.Errorf("volume size mismatch: got %d bytes, want %d (%dx%dx%d %s)",
			len(data), want, dims.Width, dims.Height, dims.Depth, format)
	}
	return &VolumeAsset{
		Dims:   dims,
		Format: format,
		Data:   data,
	}, nil
}

// LoadVolumeFile reads a headerless raw dataset from disk.
func LoadVolumeFile(path string, dims VolumeDims, format VolumeFormat) (*VolumeAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read volume %s: %w", path, err)
	}
	v, err := NewVolumeAsset(data, dims, format)
	if err != nil {
		return nil, fmt.Errorf("load volume %s: %w", path, err)
	}
	return v, nil
}

// ValueAt returns the sample at integer voxel coordinates as a float in the
// element's natural range: uint8 data maps to [0,1], float32 data is returned
// verbatim. Coordinates are not range checked.
func (v *VolumeAsset) ValueAt(x, y, z int) float32 {
	idx := (z*v.Dims.Height+y)*v.Dims.Width + x
	if v.Format == VolumeFloat32 {
		bits := binary.LittleEndian.Uint32(v.Data[idx*4:])
		return math.Float32frombits(bits)
	}
	return float32(v.Data[idx]) / 255.0
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
