package detection

import (
	"image"
	"sort"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
)

// DefaultRectangularity is the minimum share of its bounding box a region
// must fill to count as a rectangle.
const DefaultRectangularity = 0.85

// Options controls rectangle detection.
type Options struct {
	// MinArea is the lower bound of the accepted area band in pixels of the
	// original image. The upper bound is 4*MinArea.
	MinArea float64

	// UpscaleFactor is the scale of the mask relative to the original
	// image. The area band is multiplied by its square.
	UpscaleFactor int

	// MaxAspectRatio rejects shapes whose long side is at least this many
	// times the short side.
	MaxAspectRatio float64

	// Rectangularity is the minimum fill ratio of the bounding box (0-1).
	Rectangularity float64
}

// NewOptions derives detection options for an original image of the given
// size processed at upscale.
func NewOptions(cfg config.DetectionConfig, width, height, upscale int) Options {
	return Options{
		MinArea:        float64(width*height) / cfg.AreaFactor,
		UpscaleFactor:  max(upscale, 1),
		MaxAspectRatio: cfg.MaxAspectRatio,
		Rectangularity: DefaultRectangularity,
	}
}

// Result contains the rectangles found in a mask.
type Result struct {
	// Rectangles are renumbered from 0 in centroid order (x, then y).
	Rectangles []*geometry.Rectangle `json:"rectangles"`

	// Count is len(Rectangles).
	Count int `json:"count"`

	// Regions is the number of enclosed regions examined.
	Regions int `json:"regions"`
}

// DetectRectangles finds axis-aligned rectangles outlined in an edge mask.
//
// # Algorithm
//
//  1. Region finding: flood-fill the clear pixels (4-connected); regions
//     touching the mask border are background and skipped
//  2. Bounding box: the region's extent grown by one pixel so the box
//     sits on the surrounding outline
//  3. Filtering: area inside the (MinArea, 4*MinArea) band scaled by
//     UpscaleFactor², aspect ratio below MaxAspectRatio, and fill ratio of
//     at least Rectangularity
//  4. Cleanup: duplicate and nested rectangles are removed and the rest
//     renumbered
//
// # Limitations
//
//   - Only closed outlines produce rectangles; a wall with a gap leaks
//     into its neighbour region
//   - Rotated rectangles fail the fill ratio test
func DetectRectangles(mask *imaging.Mask, opts Options) *Result {
	scale := float64(max(opts.UpscaleFactor, 1))
	lo := opts.MinArea * scale * scale
	hi := 4 * lo

	regions := findRegions(mask)
	rects := make([]*geometry.Rectangle, 0)
	for _, reg := range regions {
		if reg.touchesBorder {
			continue
		}
		r := reg.rectangle()
		area := float64(r.Area())
		if area <= lo || area >= hi {
			continue
		}
		if opts.MaxAspectRatio > 0 && r.AspectRatio() >= opts.MaxAspectRatio {
			continue
		}
		if reg.fill() < opts.Rectangularity {
			continue
		}
		rects = append(rects, r)
	}

	rects = Renumber(RemoveNested(rects))
	return &Result{Rectangles: rects, Count: len(rects), Regions: len(regions)}
}

// RemoveNested drops rectangles nested within another one. Of identical
// rectangles only the first is kept.
func RemoveNested(rects []*geometry.Rectangle) []*geometry.Rectangle {
	filtered := make([]*geometry.Rectangle, 0, len(rects))
	for i, r := range rects {
		nested := false
		for j, o := range rects {
			if i == j {
				continue
			}
			if r.Bounds() == o.Bounds() {
				if j < i {
					nested = true
					break
				}
				continue
			}
			if geometry.NestedWithin(r, o) {
				nested = true
				break
			}
		}
		if !nested {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Renumber sorts rectangles by centroid (x, then y) and assigns ids from 0.
func Renumber(rects []*geometry.Rectangle) []*geometry.Rectangle {
	sort.SliceStable(rects, func(i, j int) bool {
		ci, cj := rects[i].Centroid(), rects[j].Centroid()
		if ci.X != cj.X {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})
	for i, r := range rects {
		r.ID = i
	}
	return rects
}

// region is a 4-connected component of clear mask pixels.
type region struct {
	min, max      image.Point
	pixels        int
	touchesBorder bool
}

func (r region) rectangle() *geometry.Rectangle {
	// Grow by one pixel onto the outline.
	x, y := r.min.X-1, r.min.Y-1
	return geometry.NewRectangle(0, x, y, r.max.X+1-x, r.max.Y+1-y)
}

// fill is the share of the region's own bounding box it covers.
func (r region) fill() float64 {
	box := (r.max.X - r.min.X + 1) * (r.max.Y - r.min.Y + 1)
	if box == 0 {
		return 0
	}
	return float64(r.pixels) / float64(box)
}

// findRegions labels the clear pixels of mask into 4-connected regions.
func findRegions(mask *imaging.Mask) []region {
	width, height := mask.Width(), mask.Height()
	visited := make([]bool, width*height)
	var regions []region

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || mask.At(x, y) {
				continue
			}
			regions = append(regions, floodFill(mask, visited, x, y))
		}
	}
	return regions
}

// floodFill grows a region from (startX, startY) using an explicit stack.
func floodFill(mask *imaging.Mask, visited []bool, startX, startY int) region {
	width, height := mask.Width(), mask.Height()
	reg := region{min: image.Pt(startX, startY), max: image.Pt(startX, startY)}
	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		reg.pixels++
		reg.min.X, reg.min.Y = min(reg.min.X, p.X), min(reg.min.Y, p.Y)
		reg.max.X, reg.max.Y = max(reg.max.X, p.X), max(reg.max.Y, p.Y)
		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			reg.touchesBorder = true
		}

		for _, d := range [4]image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			n := p.Add(d)
			if n.X < 0 || n.Y < 0 || n.X >= width || n.Y >= height {
				continue
			}
			if visited[n.Y*width+n.X] || mask.At(n.X, n.Y) {
				continue
			}
			visited[n.Y*width+n.X] = true
			stack = append(stack, n)
		}
	}
	return reg
}
