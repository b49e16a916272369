package connect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
)

func iv(start, end int) geometry.Interval {
	return geometry.Interval{Start: start, End: end}
}

func TestCondense(t *testing.T) {
	tests := []struct {
		name string
		in   []geometry.Interval
		want []geometry.Interval
	}{
		{"empty", nil, nil},
		{"touching joins", []geometry.Interval{iv(5, 10), iv(0, 5)}, []geometry.Interval{iv(0, 10)}},
		{"overlapping narrows", []geometry.Interval{iv(0, 10), iv(4, 20)}, []geometry.Interval{iv(4, 10)}},
		{"disjoint kept", []geometry.Interval{iv(0, 3), iv(8, 12)}, []geometry.Interval{iv(0, 3), iv(8, 12)}},
		{"duplicates", []geometry.Interval{iv(2, 4), iv(2, 4)}, []geometry.Interval{iv(2, 4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, condense(tt.in))
		})
	}
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, []geometry.Interval{iv(5, 6), iv(21, 22)}, collapse([]geometry.Interval{iv(0, 11), iv(20, 23)}))
}

func TestRegistry_Converge(t *testing.T) {
	r := newRegistry()
	r.converge([]geometry.Interval{iv(0, 11), iv(4, 11), iv(40, 50)})

	pos, ok := r.resolve(iv(0, 11))
	assert.True(t, ok)
	assert.Equal(t, 7, pos)
	pos, ok = r.resolve(iv(4, 11))
	assert.True(t, ok)
	assert.Equal(t, 7, pos)
	pos, ok = r.resolve(iv(40, 50))
	assert.True(t, ok)
	assert.Equal(t, 45, pos)
	assert.Equal(t, 2, r.len())

	// Covered spans reuse the existing position.
	r.converge([]geometry.Interval{iv(6, 30)})
	assert.Equal(t, 2, r.len())

	_, ok = r.resolve(iv(12, 20))
	assert.False(t, ok)
}

func TestRegistry_ResolvePrefersMiddle(t *testing.T) {
	r := newRegistry()
	r.add(entry{pos: 2})
	r.add(entry{pos: 9})

	pos, ok := r.resolve(iv(0, 20))
	assert.True(t, ok)
	assert.Equal(t, 9, pos)
}

func TestScan(t *testing.T) {
	mask := imaging.NewMask(30, 10)
	// Columns 10-11 blocked, column 20 blocked.
	for y := 0; y < 10; y++ {
		mask.Set(10, y, true)
		mask.Set(11, y, true)
	}
	mask.Set(20, 4, true)

	e := &Engine{mask: mask}
	e.cfg.MinSpanLength = 3
	e.cfg.SpanDiscontinuity = 2

	spans := e.scan(geometry.AxisX, iv(0, 30), iv(0, 10))
	assert.Equal(t, []geometry.Interval{iv(0, 10), iv(12, 30)}, spans)

	e.cfg.SpanDiscontinuity = 3
	spans = e.scan(geometry.AxisX, iv(0, 30), iv(0, 10))
	assert.Equal(t, []geometry.Interval{iv(0, 30)}, spans)

	// Rows outside the gap do not block.
	spans = e.scan(geometry.AxisX, iv(15, 25), iv(5, 10))
	assert.Equal(t, []geometry.Interval{iv(15, 25)}, spans)

	e.cfg.MinSpanLength = 20
	e.cfg.SpanDiscontinuity = 0
	assert.Empty(t, e.scan(geometry.AxisX, iv(0, 30), iv(0, 10)))
}

func TestFilters(t *testing.T) {
	r := geometry.NewRectangle(1, 10, 10, 10, 10)

	through := geometry.NewLine(1, geometry.Point{X: 15, Y: 0}, geometry.Point{X: 15, Y: 30})
	edge := geometry.NewLine(2, geometry.Point{X: 10, Y: 0}, geometry.Point{X: 10, Y: 30})
	touching := geometry.NewLine(3, geometry.Point{X: 15, Y: 20}, geometry.Point{X: 15, Y: 40})

	assert.True(t, crossesInterior(through, r))
	assert.False(t, crossesInterior(edge, r))
	assert.False(t, crossesInterior(touching, r))

	kept := removeCrossing([]*geometry.Line{through, edge, touching}, []*geometry.Rectangle{r})
	assert.Equal(t, []*geometry.Line{edge, touching}, kept)

	inner := geometry.NewLine(4, geometry.Point{X: 10, Y: 5}, geometry.Point{X: 10, Y: 25})
	dup := geometry.NewLine(5, geometry.Point{X: 10, Y: 0}, geometry.Point{X: 10, Y: 30})
	assert.Equal(t, []*geometry.Line{edge, touching}, dedupe([]*geometry.Line{edge, inner, dup, touching}))
}
