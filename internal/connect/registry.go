package connect

import (
	"sort"

	"github.com/tidwall/btree"

	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

// entry is a canonical connector position.
type entry struct {
	pos int
}

func entryLess(a, b entry) bool {
	return a.pos < b.pos
}

// registry holds the canonical positions of one axis, ordered by position.
type registry struct {
	tree *btree.BTreeG[entry]
}

func newRegistry() *registry {
	return &registry{tree: btree.NewBTreeG[entry](entryLess)}
}

// resolve returns the canonical position inside span closest to its
// middle.
func (r *registry) resolve(span geometry.Interval) (int, bool) {
	mid := span.Mid()
	best, found := 0, false
	r.tree.Ascend(entry{pos: span.Start}, func(e entry) bool {
		if e.pos >= span.End {
			return false
		}
		if !found || abs(e.pos-mid) < abs(best-mid) {
			best, found = e.pos, true
		}
		return true
	})
	return best, found
}

// add registers a position unless it is already known.
func (r *registry) add(e entry) {
	if _, ok := r.tree.Get(e); ok {
		return
	}
	r.tree.Set(e)
}

// converge registers canonical positions for spans that no existing entry
// covers. The uncovered spans are condensed, collapsed to their midpoints
// and condensed again; any span still uncovered registers its own middle.
func (r *registry) converge(spans []geometry.Interval) {
	var uncovered []geometry.Interval
	for _, s := range spans {
		if _, ok := r.resolve(s); !ok {
			uncovered = append(uncovered, s)
		}
	}
	if len(uncovered) == 0 {
		return
	}

	for _, s := range condense(collapse(condense(uncovered))) {
		r.add(entry{pos: s.Mid()})
	}
	for _, s := range uncovered {
		if _, ok := r.resolve(s); !ok {
			r.add(entry{pos: s.Mid()})
		}
	}
}

func (r *registry) len() int {
	return r.tree.Len()
}

// condense merges sorted spans: touching spans are joined, strictly
// overlapping spans are narrowed to their intersection, and disjoint spans
// start a new group.
func condense(spans []geometry.Interval) []geometry.Interval {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]geometry.Interval(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := []geometry.Interval{sorted[0]}
	for _, s := range sorted[1:] {
		cur := &out[len(out)-1]
		switch {
		case s.Start == cur.End:
			*cur = cur.Union(s)
		case cur.Overlaps(s):
			*cur = cur.Intersect(s)
		default:
			out = append(out, s)
		}
	}
	return out
}

// collapse replaces every span with the single position at its middle.
func collapse(spans []geometry.Interval) []geometry.Interval {
	out := make([]geometry.Interval, len(spans))
	for i, s := range spans {
		m := s.Mid()
		out[i] = geometry.Interval{Start: m, End: m + 1}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
