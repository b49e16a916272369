package geometry

import "fmt"

// Unclustered marks a rectangle that belongs to no cluster.
const Unclustered = -1

// Rectangle is a detected axis-aligned region.
type Rectangle struct {
	ID      int      `json:"id"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Cluster int      `json:"cluster"`
	Links   []string `json:"links,omitempty"`
}

// NewRectangle creates an unclustered rectangle.
func NewRectangle(id, x, y, w, h int) *Rectangle {
	return &Rectangle{ID: id, X: x, Y: y, W: w, H: h, Cluster: Unclustered}
}

// Bounds implements Shape.
func (r *Rectangle) Bounds() Bounds {
	return Bounds{X1: r.X, Y1: r.Y, X2: r.X + r.W, Y2: r.Y + r.H}
}

// Identifier implements Shape.
func (r *Rectangle) Identifier() string {
	return fmt.Sprintf("R%d", r.ID)
}

// IsRectangle implements Shape.
func (r *Rectangle) IsRectangle() bool { return true }

// Centroid returns the integer center of the rectangle.
func (r *Rectangle) Centroid() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns W*H.
func (r *Rectangle) Area() int {
	return r.W * r.H
}

// AspectRatio returns the ratio of the longer side to the shorter one.
func (r *Rectangle) AspectRatio() float64 {
	if r.W == 0 || r.H == 0 {
		return 0
	}
	long, short := max(r.W, r.H), min(r.W, r.H)
	return float64(long) / float64(short)
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r *Rectangle) Contains(p Point) bool {
	return r.Bounds().ContainsPoint(p)
}

// AddLink records the identifier of geometry anchored to the rectangle.
// Duplicate identifiers are ignored.
func (r *Rectangle) AddLink(id string) {
	for _, l := range r.Links {
		if l == id {
			return
		}
	}
	r.Links = append(r.Links, id)
}

// Clone returns a deep copy.
func (r *Rectangle) Clone() *Rectangle {
	c := *r
	c.Links = append([]string(nil), r.Links...)
	return &c
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("%s(%d,%d %dx%d)", r.Identifier(), r.X, r.Y, r.W, r.H)
}
