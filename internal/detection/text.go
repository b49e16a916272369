package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
)

// TextRegion is a window of the edge mask that looks like lettering.
type TextRegion struct {
	Bounds     geometry.Bounds `json:"bounds"`
	Confidence float64         `json:"confidence"`
	Area       int             `json:"area"`
}

// TextRegionsResult contains detected text regions.
type TextRegionsResult struct {
	Regions []TextRegion `json:"regions"`
	Count   int          `json:"count"`
}

// textWindows are the sliding window sizes, smallest lettering last.
var textWindows = []struct{ w, h int }{
	{100, 30},
	{150, 40},
	{200, 50},
	{80, 25},
}

// DetectTextRegions finds windows of the edge mask likely to contain room
// labels. It is the fallback when OCR is not compiled in.
//
// Lettering has a medium edge density (5% to 40%) with more horizontal
// than vertical runs. Walls are single-pixel runs and fall below the
// density band. Overlapping windows are merged and the result is sorted
// by confidence, highest first.
func DetectTextRegions(mask *imaging.Mask, minConfidence float64) *TextRegionsResult {
	width, height := mask.Width(), mask.Height()
	candidates := make([]TextRegion, 0)

	for _, ws := range textWindows {
		stepX, stepY := ws.w/2, ws.h/2

		for y := 0; y <= height-ws.h; y += stepY {
			for x := 0; x <= width-ws.w; x += stepX {
				edgeCount := 0
				for wy := 0; wy < ws.h; wy++ {
					for wx := 0; wx < ws.w; wx++ {
						if mask.At(x+wx, y+wy) {
							edgeCount++
						}
					}
				}

				area := ws.w * ws.h
				density := float64(edgeCount) / float64(area)
				if density < 0.05 || density > 0.4 {
					continue
				}

				confidence := horizontalScore(mask, x, y, ws.w, ws.h) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence < minConfidence {
					continue
				}
				candidates = append(candidates, TextRegion{
					Bounds:     geometry.Bounds{X1: x, Y1: y, X2: x + ws.w - 1, Y2: y + ws.h - 1},
					Confidence: math.Round(confidence*1000) / 1000,
					Area:       area,
				})
			}
		}
	}

	merged := mergeOverlappingRegions(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})

	return &TextRegionsResult{Regions: merged, Count: len(merged)}
}

// SuppressRegions clears every region from the mask and returns the number
// of pixels removed.
func SuppressRegions(mask *imaging.Mask, regions []geometry.Bounds) int {
	before := mask.Count()
	for _, b := range regions {
		mask.Clear(b)
	}
	return before - mask.Count()
}

// horizontalScore is the share of horizontal edge runs among all runs in
// the window.
func horizontalScore(mask *imaging.Mask, x, y, w, h int) float64 {
	horizontalRuns, verticalRuns := 0, 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if mask.At(col, row) {
				if !inRun {
					horizontalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if mask.At(col, row) {
				if !inRun {
					verticalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeOverlappingRegions folds each region into the first one it overlaps.
func mergeOverlappingRegions(regions []TextRegion) []TextRegion {
	merged := make([]TextRegion, 0, len(regions))

	for _, r := range regions {
		found := false
		for i := range merged {
			if !regionsOverlap(r.Bounds, merged[i].Bounds) {
				continue
			}
			merged[i].Bounds = mergeBounds(r.Bounds, merged[i].Bounds)
			merged[i].Confidence = math.Max(r.Confidence, merged[i].Confidence)
			merged[i].Area = (merged[i].Bounds.Width() + 1) * (merged[i].Bounds.Height() + 1)
			found = true
			break
		}
		if !found {
			merged = append(merged, r)
		}
	}
	return merged
}

// regionsOverlap reports whether two inclusive bounds share a pixel.
func regionsOverlap(a, b geometry.Bounds) bool {
	return a.X1 <= b.X2 && a.X2 >= b.X1 && a.Y1 <= b.Y2 && a.Y2 >= b.Y1
}

func mergeBounds(a, b geometry.Bounds) geometry.Bounds {
	return geometry.Bounds{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}
