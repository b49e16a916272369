package geometry

// Record type tags.
const (
	TypeRectangle = "rectangle"
	TypeLine      = "line"
	TypeNode      = "node"
)

// RectangleRecord is the serialized form of a Rectangle.
type RectangleRecord struct {
	Type    string   `json:"type"`
	ID      int      `json:"id"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Cluster int      `json:"cluster"`
	Links   []string `json:"links,omitempty"`
}

// LineRecord is the serialized form of a Line. X, Y, W and H describe the
// bounding box; Start and End keep the orientation.
type LineRecord struct {
	Type  string `json:"type"`
	ID    int    `json:"id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// NodeRecord is the serialized form of a Node. Connection is null for
// travel nodes.
type NodeRecord struct {
	Type       string          `json:"type"`
	ID         int             `json:"id"`
	X          int             `json:"x"`
	Y          int             `json:"y"`
	Links      map[int]float64 `json:"links"`
	Connection *string         `json:"connection"`
}

// Record implements Shape.
func (r *Rectangle) Record() any {
	return RectangleRecord{
		Type:    TypeRectangle,
		ID:      r.ID,
		X:       r.X,
		Y:       r.Y,
		W:       r.W,
		H:       r.H,
		Cluster: r.Cluster,
		Links:   append([]string(nil), r.Links...),
	}
}

// Record implements Shape.
func (l *Line) Record() any {
	b := l.Bounds()
	return LineRecord{
		Type:  TypeLine,
		ID:    l.ID,
		X:     b.X1,
		Y:     b.Y1,
		W:     b.Width(),
		H:     b.Height(),
		Start: l.Start,
		End:   l.End,
	}
}

// Record returns the serializable form of the node.
func (n *Node) Record() any {
	rec := NodeRecord{
		Type:  TypeNode,
		ID:    n.ID,
		X:     n.Position.X,
		Y:     n.Position.Y,
		Links: make(map[int]float64, len(n.Links)),
	}
	for k, v := range n.Links {
		rec.Links[k] = v
	}
	if n.Connection != "" {
		c := n.Connection
		rec.Connection = &c
	}
	return rec
}

// Rectangle rebuilds the rectangle described by the record.
func (rec RectangleRecord) Rectangle() *Rectangle {
	r := &Rectangle{ID: rec.ID, X: rec.X, Y: rec.Y, W: rec.W, H: rec.H, Cluster: rec.Cluster}
	if len(rec.Links) > 0 {
		r.Links = append([]string(nil), rec.Links...)
	}
	return r
}

// Line rebuilds the line described by the record. Records without
// endpoints fall back to the bounding box.
func (rec LineRecord) Line() *Line {
	if rec.Start == (Point{}) && rec.End == (Point{}) {
		return &Line{
			ID:    rec.ID,
			Start: Point{X: rec.X, Y: rec.Y},
			End:   Point{X: rec.X + rec.W, Y: rec.Y + rec.H},
		}
	}
	return &Line{ID: rec.ID, Start: rec.Start, End: rec.End}
}

// Node rebuilds the node described by the record.
func (rec NodeRecord) Node() *Node {
	n := NewNode(rec.ID, Point{X: rec.X, Y: rec.Y})
	for k, v := range rec.Links {
		n.Links[k] = v
	}
	if rec.Connection != nil {
		n.Connection = *rec.Connection
	}
	return n
}
