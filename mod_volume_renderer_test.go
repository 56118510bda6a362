package volview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachSliceBackToFront_orderAndDepth(t *testing.T) {
	const n = 128

	var indices []int
	var depths []float32
	forEachSliceBackToFront(n, func(i int, depth float32) {
		indices = append(indices, i)
		depths = append(depths, depth)
	})

	require.Len(t, indices, n)
	assert.Equal(t, n-1, indices[0], "farthest slice drawn first")
	assert.Equal(t, 0, indices[n-1], "nearest slice drawn last")
	for k := 1; k < n; k++ {
		assert.Equal(t, indices[k-1]-1, indices[k], "indices strictly decreasing")
	}

	assert.Equal(t, float32(1.0), depths[0])
	assert.Equal(t, float32(0.0), depths[n-1])
	for k, i := range indices {
		assert.Equal(t, float32(i)/float32(n-1), depths[k])
	}
}

func TestForEachSliceBackToFront_twoSlices(t *testing.T) {
	var depths []float32
	forEachSliceBackToFront(2, func(_ int, depth float32) {
		depths = append(depths, depth)
	})

	assert.Equal(t, []float32{1.0, 0.0}, depths)
}

func TestVolumeRendererModule_rejectsDegenerateSliceCount(t *testing.T) {
	for _, count := range []int{-1, 0, 1} {
		assert.Panics(t, func() {
			NewAppBuilder().
				UseModule(VolumeRendererModule{SliceCount: count}).
				Build()
		}, "slice count %d", count)
	}
}
