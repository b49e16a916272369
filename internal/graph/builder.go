package graph

import (
	"sort"

	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

// Build returns the nodes of the graph formed by lines and rects, ordered
// by id. Node ids are drawn from seq; a nil seq starts at 1. Rectangles
// reached by a line get the terminal node and line identifiers appended to
// their Links.
func Build(rects []*geometry.Rectangle, lines []*geometry.Line, seq *geometry.Sequence) []*geometry.Node {
	if len(lines) == 0 {
		return nil
	}
	if seq == nil {
		seq = geometry.NewSequence(1)
	}

	b := &builder{
		seq:       seq,
		byPos:     make(map[geometry.Point]*geometry.Node),
		terminals: make(map[*geometry.Rectangle]*geometry.Node),
	}

	ordered := append([]*geometry.Line(nil), lines...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	b.intersections(ordered)
	for _, l := range ordered {
		b.linkAlong(l, rects)
	}
	return b.nodes
}

type builder struct {
	seq       *geometry.Sequence
	nodes     []*geometry.Node
	byPos     map[geometry.Point]*geometry.Node
	terminals map[*geometry.Rectangle]*geometry.Node
}

// intersections creates a travel node at every crossing of a vertical and
// a horizontal line, extents inclusive.
func (b *builder) intersections(lines []*geometry.Line) {
	var verticals, horizontals []*geometry.Line
	for _, l := range lines {
		switch {
		case l.Vertical():
			verticals = append(verticals, l)
		case l.Horizontal():
			horizontals = append(horizontals, l)
		}
	}

	for _, v := range verticals {
		vb := v.Bounds()
		for _, h := range horizontals {
			hb := h.Bounds()
			if vb.X1 >= hb.X1 && vb.X1 <= hb.X2 && hb.Y1 >= vb.Y1 && hb.Y1 <= vb.Y2 {
				b.travelNode(geometry.Point{X: vb.X1, Y: hb.Y1})
			}
		}
	}
}

func (b *builder) travelNode(p geometry.Point) *geometry.Node {
	if n, ok := b.byPos[p]; ok {
		return n
	}
	n := geometry.NewNode(b.seq.Next(), p)
	b.byPos[p] = n
	b.nodes = append(b.nodes, n)
	return n
}

// onLine returns the travel nodes lying on l, sorted from Start to End.
func (b *builder) onLine(l *geometry.Line) []*geometry.Node {
	var out []*geometry.Node
	for _, n := range b.nodes {
		if !n.Terminal() && l.Coincident(n.Position) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		if pi.X != pj.X {
			return pi.X < pj.X
		}
		return pi.Y < pj.Y
	})
	return out
}

// linkAlong links consecutive nodes on l and anchors its endpoints.
func (b *builder) linkAlong(l *geometry.Line, rects []*geometry.Rectangle) {
	onLine := b.onLine(l)
	for i := 1; i < len(onLine); i++ {
		onLine[i-1].Link(onLine[i])
	}

	var startTerm, endTerm *geometry.Node
	if len(onLine) == 0 || onLine[0].Position != l.Start {
		startTerm = b.anchor(l, l.Start, rects)
	}
	if len(onLine) == 0 || onLine[len(onLine)-1].Position != l.End {
		endTerm = b.anchor(l, l.End, rects)
	}

	if len(onLine) == 0 {
		if startTerm != nil && endTerm != nil {
			startTerm.Link(endTerm)
		}
		return
	}
	if startTerm != nil {
		startTerm.Link(onLine[0])
	}
	if endTerm != nil {
		endTerm.Link(onLine[len(onLine)-1])
	}
}

// anchor returns the terminal node of the first rectangle containing p,
// creating it on first use, and records the line on the rectangle.
func (b *builder) anchor(l *geometry.Line, p geometry.Point, rects []*geometry.Rectangle) *geometry.Node {
	for _, r := range rects {
		if !r.Contains(p) {
			continue
		}
		n, ok := b.terminals[r]
		if !ok {
			n = geometry.NewNode(b.seq.Next(), r.Centroid())
			n.Connection = r.Identifier()
			b.terminals[r] = n
			b.nodes = append(b.nodes, n)
		}
		r.AddLink(n.Identifier())
		r.AddLink(l.Identifier())
		return n
	}
	return nil
}
