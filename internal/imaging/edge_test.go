package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeDetect_StrongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	mask := EdgeDetect(img, 50, 150)
	require.Equal(t, 100, mask.Width())
	require.Equal(t, 100, mask.Height())

	edgeFound := false
	for x := 47; x <= 52; x++ {
		edgeFound = edgeFound || mask.At(x, 50)
	}
	assert.True(t, edgeFound, "strong vertical edge was not detected")
	assert.False(t, mask.At(10, 50), "flat dark region has an edge")
	assert.False(t, mask.At(90, 50), "flat light region has an edge")
}

func TestEdgeDetect_UniformImage(t *testing.T) {
	mask := EdgeDetect(solidImage(50, 50, color.Gray{Y: 128}), 50, 150)
	assert.Zero(t, mask.Count())
}

func TestEdgeDetect_MedianThresholds(t *testing.T) {
	img := floorPlanImage(120, 120, image.Rect(20, 20, 60, 60), image.Rect(70, 20, 100, 90))

	low, high := EdgeThresholds(img)
	assert.InDelta(t, 0.24*255, low, 1e-6)
	assert.InDelta(t, 0.96*255, high, 1e-6)

	assert.NotZero(t, EdgeDetect(img, 0, 0).Count(), "room outlines should produce edges")
}

func TestEdgeDetect_Empty(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	mask := EdgeDetect(empty, 0, 0)
	assert.Zero(t, mask.Width())
	assert.Zero(t, mask.Height())

	low, high := EdgeThresholds(empty)
	assert.Zero(t, low)
	assert.Zero(t, high)
}

func TestGaussianBlur(t *testing.T) {
	width, height := 11, 11
	img := make([][]float64, height)
	for y := range img {
		img[y] = make([]float64, width)
		for x := range img[y] {
			img[y][x] = 0.5
		}
	}
	img[5][5] = 1.0

	blurred := gaussianBlur(img, width, height)

	assert.Less(t, blurred[5][5], 1.0, "bright spot should be reduced")
	assert.Greater(t, blurred[5][4], 0.5, "left neighbour should brighten")
	assert.Greater(t, blurred[4][5], 0.5, "upper neighbour should brighten")
	assert.InDelta(t, 0.5, blurred[0][0], 1e-9)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clamp(tt.val, tt.lo, tt.hi), "clamp(%d, %d, %d)", tt.val, tt.lo, tt.hi)
	}
}
