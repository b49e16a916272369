package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// solidImage creates an in-memory image filled with a single color.
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// floorPlanImage draws black room outlines on a white page.
func floorPlanImage(width, height int, rooms ...image.Rectangle) *image.RGBA {
	img := solidImage(width, height, color.White)
	for _, r := range rooms {
		for x := r.Min.X; x <= r.Max.X; x++ {
			img.Set(x, r.Min.Y, color.Black)
			img.Set(x, r.Max.Y, color.Black)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			img.Set(r.Min.X, y, color.Black)
			img.Set(r.Max.X, y, color.Black)
		}
	}
	return img
}

// writePNG saves img into the test's temp dir and returns the path.
func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
