package volview

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/stat"
)

// VolumeStats summarizes the intensity distribution of a dataset. For large
// volumes the samples are strided so the summary stays cheap; min/max are
// still exact because normalization depends on them.
type VolumeStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

const statsSampleBudget = 1 << 20

// ComputeStats scans the volume once for exact min/max and computes
// mean/stddev over at most statsSampleBudget strided samples.
func ComputeStats(v *VolumeAsset) VolumeStats {
	n := v.Dims.ElementCount()
	if n == 0 {
		return VolumeStats{}
	}

	min := math.Inf(1)
	max := math.Inf(-1)
	for i := 0; i < n; i++ {
		val := float64(v.valueAtIndex(i))
		if val < min {
			min = val
		}
		if val > max {
			max = val
		}
	}

	stride := 1
	if n > statsSampleBudget {
		stride = n / statsSampleBudget
	}
	samples := make([]float64, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		samples = append(samples, float64(v.valueAtIndex(i)))
	}

	return VolumeStats{
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(samples, nil),
		StdDev: stat.StdDev(samples, nil),
	}
}

// Normalize rescales a float32 volume in place so observed intensities span
// [0,1]. Uint8 volumes are already normalized by the sampler and are left
// untouched. Returns the stats observed before rescaling.
func (v *VolumeAsset) Normalize() VolumeStats {
	stats := ComputeStats(v)
	if v.Format != VolumeFloat32 {
		return stats
	}
	span := stats.Max - stats.Min
	if span <= 0 {
		return stats
	}

	n := v.Dims.ElementCount()
	for i := 0; i < n; i++ {
		val := (float64(v.valueAtIndex(i)) - stats.Min) / span
		binary.LittleEndian.PutUint32(v.Data[i*4:], math.Float32bits(float32(val)))
	}
	return stats
}

func (v *VolumeAsset) valueAtIndex(i int) float32 {
	if v.Format == VolumeFloat32 {
		bits := binary.LittleEndian.Uint32(v.Data[i*4:])
		return math.Float32frombits(bits)
	}
	return float32(v.Data[i]) / 255.0
}
