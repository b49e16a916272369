package geometry

import "fmt"

// Node is a vertex of the connectivity graph.
//
// Travel nodes sit on line intersections and have an empty Connection.
// Terminal nodes sit on a rectangle's centroid and carry the rectangle's
// identifier in Connection.
type Node struct {
	ID         int             `json:"id"`
	Position   Point           `json:"position"`
	Links      map[int]float64 `json:"links"`
	Connection string          `json:"connection,omitempty"`
}

// NewNode creates a travel node at p.
func NewNode(id int, p Point) *Node {
	return &Node{ID: id, Position: p, Links: make(map[int]float64)}
}

// Identifier returns "N<id>".
func (n *Node) Identifier() string {
	return fmt.Sprintf("N%d", n.ID)
}

// Terminal reports whether the node is anchored to a rectangle.
func (n *Node) Terminal() bool {
	return n.Connection != ""
}

// Link connects n and o in both directions, weighted by Euclidean distance.
// Linking a node to itself is a no-op.
func (n *Node) Link(o *Node) {
	if n.ID == o.ID {
		return
	}
	d := n.Position.Distance(o.Position)
	n.Links[o.ID] = d
	o.Links[n.ID] = d
}

func (n *Node) String() string {
	return fmt.Sprintf("%s%s", n.Identifier(), n.Position)
}
