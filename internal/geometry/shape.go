package geometry

// Shape is the capability shared by rectangles and lines: anything the
// connectivity engine can pair up and connect.
type Shape interface {
	// Bounds returns the inclusive bounding box.
	Bounds() Bounds
	// Identifier returns a stable, type-prefixed identifier such as "R3" or "L7".
	Identifier() string
	// IsRectangle reports whether the shape is a detected region rather than
	// a derived line.
	IsRectangle() bool
	// Record returns the serializable form of the shape.
	Record() any
}

// NestedWithin reports whether a's bounding box lies entirely inside b's.
func NestedWithin(a, b Shape) bool {
	return a.Bounds().Within(b.Bounds())
}

// SpanningAxis returns the axis on which a and b can be connected.
func SpanningAxis(a, b Shape) (Axis, bool) {
	return a.Bounds().SpanningAxis(b.Bounds())
}
