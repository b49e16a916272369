package geometry

// Bounds represents an axis-aligned bounding box in pixel coordinates.
//
// Both corners are inclusive: (X1, Y1) is the top-left pixel and (X2, Y2)
// the bottom-right pixel. A line has zero extent on one axis.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Projection returns the inclusive range of the bounds on the given axis as
// a half-open interval.
func (b Bounds) Projection(axis Axis) Interval {
	if axis == AxisX {
		return Interval{Start: b.X1, End: b.X2 + 1}
	}
	return Interval{Start: b.Y1, End: b.Y2 + 1}
}

// Within reports whether b lies entirely inside o.
func (b Bounds) Within(o Bounds) bool {
	return b.X1 >= o.X1 && b.Y1 >= o.Y1 && b.X2 <= o.X2 && b.Y2 <= o.Y2
}

// ContainsPoint reports whether p lies inside b, edges included.
func (b Bounds) ContainsPoint(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Width is the extent along X.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height is the extent along Y.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// SpanningAxis returns the first axis (X, then Y) on which the projections
// of b and o share at least one position.
func (b Bounds) SpanningAxis(o Bounds) (Axis, bool) {
	if b.Projection(AxisX).Overlaps(o.Projection(AxisX)) {
		return AxisX, true
	}
	if b.Projection(AxisY).Overlaps(o.Projection(AxisY)) {
		return AxisY, true
	}
	return AxisX, false
}

// OverlapRange returns the positions shared by both projections on axis.
// The result is the set of candidate positions for a connector.
func (b Bounds) OverlapRange(o Bounds, axis Axis) Interval {
	return b.Projection(axis).Intersect(o.Projection(axis))
}

// BoundingRange returns the gap between b and o on the axis perpendicular
// to axis, shrunk by discontinuity on each side. The facing edges
// themselves are excluded whenever discontinuity is positive. The result is
// empty when the shapes overlap on the perpendicular axis or the gap is too
// narrow.
func (b Bounds) BoundingRange(o Bounds, axis Axis, discontinuity int) Interval {
	var nearEnd, farStart int
	if axis == AxisX {
		nearEnd, farStart = min(b.Y2, o.Y2), max(b.Y1, o.Y1)
	} else {
		nearEnd, farStart = min(b.X2, o.X2), max(b.X1, o.X1)
	}
	return Interval{Start: nearEnd + discontinuity, End: farStart - discontinuity + 1}
}

// Facing returns the coordinates of the two facing edges across the gap
// on the axis perpendicular to axis: the edge of the nearer shape and the
// edge of the farther one.
func (b Bounds) Facing(o Bounds, axis Axis) (near, far int) {
	if axis == AxisX {
		return min(b.Y2, o.Y2), max(b.Y1, o.Y1)
	}
	return min(b.X2, o.X2), max(b.X1, o.X1)
}
