package geometry

import "fmt"

// Axis names the axis along which two shapes' projections overlap.
//
// A connector found on AxisX runs vertically (it crosses the gap in Y at a
// shared X position); a connector on AxisY runs horizontally.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Interval is a half-open range [Start, End) of pixel positions.
// An interval with End <= Start is empty.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of positions in the interval, or 0 if empty.
func (iv Interval) Len() int {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Empty reports whether the interval holds no positions.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Mid returns the middle position, rounding down.
func (iv Interval) Mid() int {
	return iv.Start + (iv.End-iv.Start)/2
}

// Contains reports whether pos lies inside the interval.
func (iv Interval) Contains(pos int) bool {
	return pos >= iv.Start && pos < iv.End
}

// ContainsInterval reports whether o lies entirely inside iv.
func (iv Interval) ContainsInterval(o Interval) bool {
	return o.Start >= iv.Start && o.End <= iv.End
}

// Overlaps reports whether the two intervals share at least one position.
func (iv Interval) Overlaps(o Interval) bool {
	return max(iv.Start, o.Start) < min(iv.End, o.End)
}

// Touches reports whether o begins exactly where iv ends (or vice versa).
func (iv Interval) Touches(o Interval) bool {
	return iv.End == o.Start || o.End == iv.Start
}

// Intersect returns the shared positions of both intervals.
func (iv Interval) Intersect(o Interval) Interval {
	return Interval{Start: max(iv.Start, o.Start), End: min(iv.End, o.End)}
}

// Union returns the smallest interval covering both.
func (iv Interval) Union(o Interval) Interval {
	return Interval{Start: min(iv.Start, o.Start), End: max(iv.End, o.End)}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.Start, iv.End)
}
