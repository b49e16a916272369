package connect

import "github.com/ironsheep/floorplan-mcp/internal/geometry"

// crossesInterior reports whether l passes through the inside of r. Lines
// running along or ending on an edge do not cross.
func crossesInterior(l *geometry.Line, r *geometry.Rectangle) bool {
	lb := l.Bounds()
	return max(lb.X1, r.X+1) <= min(lb.X2, r.X+r.W-1) &&
		max(lb.Y1, r.Y+1) <= min(lb.Y2, r.Y+r.H-1)
}

func crossesAny(l *geometry.Line, rects []*geometry.Rectangle) bool {
	for _, r := range rects {
		if crossesInterior(l, r) {
			return true
		}
	}
	return false
}

// removeCrossing drops lines that cross the interior of any rectangle.
func removeCrossing(lines []*geometry.Line, rects []*geometry.Rectangle) []*geometry.Line {
	out := lines[:0:0]
	for _, l := range lines {
		if !crossesAny(l, rects) {
			out = append(out, l)
		}
	}
	return out
}

// dedupe removes lines covering the same pixels as an earlier line and
// lines nested inside another line.
func dedupe(lines []*geometry.Line) []*geometry.Line {
	var out []*geometry.Line
	for i, l := range lines {
		redundant := false
		for j, o := range lines {
			if i == j {
				continue
			}
			if l.SameGeometry(o) {
				if j < i {
					redundant = true
					break
				}
				continue
			}
			if geometry.NestedWithin(l, o) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, l)
		}
	}
	return out
}
