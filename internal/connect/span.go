package connect

import "github.com/ironsheep/floorplan-mcp/internal/geometry"

// blocked reports whether the corridor at pos is obstructed. For AxisX, pos
// is a column and gap a range of rows; for AxisY the roles swap.
func (e *Engine) blocked(axis geometry.Axis, pos int, gap geometry.Interval) bool {
	for i := gap.Start; i < gap.End; i++ {
		if axis == geometry.AxisX {
			if e.mask.At(pos, i) {
				return true
			}
		} else if e.mask.At(i, pos) {
			return true
		}
	}
	return false
}

// scan returns the maximal unblocked runs of candidate. Blocked runs
// shorter than the span discontinuity are bridged; runs shorter than the
// minimum span length are dropped.
func (e *Engine) scan(axis geometry.Axis, candidate, gap geometry.Interval) []geometry.Interval {
	var spans []geometry.Interval
	emit := func(start, end int) {
		if s := (geometry.Interval{Start: start, End: end}); s.Len() >= e.cfg.MinSpanLength {
			spans = append(spans, s)
		}
	}

	start, gapStart := -1, -1
	for pos := candidate.Start; pos < candidate.End; pos++ {
		if e.blocked(axis, pos, gap) {
			if start >= 0 && gapStart < 0 {
				gapStart = pos
			}
			continue
		}
		switch {
		case start < 0:
			start = pos
		case gapStart >= 0 && pos-gapStart >= e.cfg.SpanDiscontinuity:
			emit(start, gapStart)
			start = pos
		}
		gapStart = -1
	}
	if start >= 0 {
		end := candidate.End
		if gapStart >= 0 {
			end = gapStart
		}
		emit(start, end)
	}
	return spans
}
