package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

// Mask is a binary obstacle grid. A set pixel blocks a corridor.
//
// Pixels are addressed as (x, y) and stored row-major. A Mask is read-only
// once handed to the connectivity engine and may be shared by concurrent
// runs.
type Mask struct {
	width  int
	height int
	px     []bool
}

// NewMask creates a clear mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, px: make([]bool, width*height)}
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// At reports whether the pixel at (x, y) is set. It panics when (x, y) lies
// outside the mask; callers validate bounds up front.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(fmt.Sprintf("imaging: mask access (%d,%d) outside %dx%d", x, y, m.width, m.height))
	}
	return m.px[y*m.width+x]
}

// Set sets or clears the pixel at (x, y). Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.px[y*m.width+x] = v
}

// Contains reports whether every pixel of b lies inside the mask.
func (m *Mask) Contains(b geometry.Bounds) bool {
	return b.X1 >= 0 && b.Y1 >= 0 && b.X2 < m.width && b.Y2 < m.height
}

// Clear unsets every pixel of b, clipped to the mask.
func (m *Mask) Clear(b geometry.Bounds) {
	for y := max(b.Y1, 0); y <= min(b.Y2, m.height-1); y++ {
		for x := max(b.X1, 0); x <= min(b.X2, m.width-1); x++ {
			m.px[y*m.width+x] = false
		}
	}
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.px {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	c := &Mask{width: m.width, height: m.height, px: make([]bool, len(m.px))}
	copy(c.px, m.px)
	return c
}

// Gray renders the mask as an 8-bit image: set pixels are white.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, v := range m.px {
		if v {
			img.Pix[(i/m.width)*img.Stride+i%m.width] = 255
		}
	}
	return img
}

// FromGray builds a mask from any image, setting pixels whose luminance is
// at least threshold.
func FromGray(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.Gray)
			if g.Y >= threshold {
				m.px[y*m.width+x] = true
			}
		}
	}
	return m
}

// FromInk builds a mask of dark "ink" pixels: those whose CIE-Lab lightness
// is below maxLightness (0..1). Transparent pixels are never ink.
func FromInk(img image.Image, maxLightness float64) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c, ok := colorful.MakeColor(img.At(x+b.Min.X, y+b.Min.Y))
			if !ok {
				continue
			}
			if l, _, _ := c.Lab(); l < maxLightness {
				m.px[y*m.width+x] = true
			}
		}
	}
	return m
}

// Dilate grows set regions by radius pixels. A non-positive radius
// returns a copy.
func (m *Mask) Dilate(radius float64) *Mask {
	if radius <= 0 {
		return m.Clone()
	}
	return FromGray(effect.Dilate(m.Gray(), radius), 128)
}

// Union sets every pixel that is set in o. Both masks must have the same
// size.
func (m *Mask) Union(o *Mask) error {
	if m.width != o.width || m.height != o.height {
		return fmt.Errorf("mask size mismatch: %dx%d vs %dx%d", m.width, m.height, o.width, o.height)
	}
	for i, v := range o.px {
		if v {
			m.px[i] = true
		}
	}
	return nil
}
