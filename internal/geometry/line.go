package geometry

import "fmt"

// Line is an axis-aligned connector between two points.
type Line struct {
	ID    int   `json:"id"`
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewLine creates a line with Start at the smaller coordinate.
func NewLine(id int, a, b Point) *Line {
	if b.X < a.X || b.Y < a.Y {
		a, b = b, a
	}
	return &Line{ID: id, Start: a, End: b}
}

// Bounds implements Shape.
func (l *Line) Bounds() Bounds {
	return Bounds{
		X1: min(l.Start.X, l.End.X),
		Y1: min(l.Start.Y, l.End.Y),
		X2: max(l.Start.X, l.End.X),
		Y2: max(l.Start.Y, l.End.Y),
	}
}

// Identifier implements Shape.
func (l *Line) Identifier() string {
	return fmt.Sprintf("L%d", l.ID)
}

// IsRectangle implements Shape.
func (l *Line) IsRectangle() bool { return false }

// Length returns the Euclidean length.
func (l *Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Vertical reports whether the line runs along Y.
func (l *Line) Vertical() bool {
	return l.Start.X == l.End.X && l.Start.Y != l.End.Y
}

// Horizontal reports whether the line runs along X.
func (l *Line) Horizontal() bool {
	return l.Start.Y == l.End.Y && l.Start.X != l.End.X
}

// Coincident reports whether p lies on the line, endpoints included.
func (l *Line) Coincident(p Point) bool {
	return l.Bounds().ContainsPoint(p)
}

// SameGeometry reports whether both lines cover exactly the same pixels.
func (l *Line) SameGeometry(o *Line) bool {
	return l.Bounds() == o.Bounds()
}

func (l *Line) String() string {
	return fmt.Sprintf("%s%s-%s", l.Identifier(), l.Start, l.End)
}
