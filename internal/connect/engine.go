package connect

import (
	"context"
	"fmt"
	"sort"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-mcp/internal/logging"
)

// Engine derives connector lines for one run. It is not safe for
// concurrent use; the mask it reads may be shared.
type Engine struct {
	cfg  config.ConnectConfig
	mask *imaging.Mask
	seq  *geometry.Sequence

	registries [2]*registry
	lines      []*geometry.Line
	evaluated  map[[2]geometry.Shape]struct{}
}

// candidate is a span found between two shapes, not yet placed.
type candidate struct {
	axis      geometry.Axis
	span      geometry.Interval
	near, far int
}

// New validates cfg and creates an engine reading mask. Line ids are drawn
// from seq; a nil seq starts a fresh sequence at 1.
func New(mask *imaging.Mask, cfg config.ConnectConfig, seq *geometry.Sequence) (*Engine, error) {
	if mask == nil {
		return nil, errs.New(errs.CodeInvalidArgument, "obstacle mask is required")
	}
	switch {
	case cfg.LineDiscontinuity <= 0:
		return nil, errs.New(errs.CodeInvalidArgument, "line discontinuity must be positive, got %d", cfg.LineDiscontinuity)
	case cfg.SpanDiscontinuity < 0:
		return nil, errs.New(errs.CodeInvalidArgument, "span discontinuity must not be negative, got %d", cfg.SpanDiscontinuity)
	case cfg.MinSpanLength <= 0:
		return nil, errs.New(errs.CodeInvalidArgument, "minimum span length must be positive, got %d", cfg.MinSpanLength)
	case cfg.MinLineLength < 0:
		return nil, errs.New(errs.CodeInvalidArgument, "minimum line length must not be negative, got %d", cfg.MinLineLength)
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 1
	}
	if seq == nil {
		seq = geometry.NewSequence(1)
	}
	return &Engine{cfg: cfg, mask: mask, seq: seq}, nil
}

// Connect is a convenience wrapper around New and Engine.Connect.
func Connect(ctx context.Context, mask *imaging.Mask, rects []*geometry.Rectangle, cfg config.ConnectConfig, seq *geometry.Sequence) ([]*geometry.Line, error) {
	e, err := New(mask, cfg, seq)
	if err != nil {
		return nil, err
	}
	return e.Connect(ctx, rects)
}

// Connect returns the connector lines between rects, ordered by id.
// Every rectangle must lie inside the mask. Rectangles without area are
// ignored.
func (e *Engine) Connect(ctx context.Context, rects []*geometry.Rectangle) ([]*geometry.Line, error) {
	logger := logging.FromContext(ctx)

	if err := e.CheckBounds(rects); err != nil {
		return nil, err
	}

	e.registries = [2]*registry{newRegistry(), newRegistry()}
	e.lines = nil
	e.evaluated = make(map[[2]geometry.Shape]struct{})

	var shapes []geometry.Shape
	var obstacles []*geometry.Rectangle
	for _, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		shapes = append(shapes, r)
		obstacles = append(obstacles, r)
	}
	if len(shapes) < 2 {
		return nil, nil
	}

	added := e.round(e.pairs(shapes, shapes), nil)
	logger.Debug("connect round", "phase", "rect-rect", "round", 1, "added", added)

	for i := 0; i < e.cfg.MaxRounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("connect interrupted: %w", err)
		}
		added := e.round(e.pairs(shapes, lineShapes(e.lines)), nil)
		logger.Debug("connect round", "phase", "rect-line", "round", i+1, "added", added)
		if added == 0 {
			break
		}
	}

	before := len(e.lines)
	e.lines = removeCrossing(e.lines, obstacles)
	logger.Debug("rectangle filter", "removed", before-len(e.lines))

	for i := 0; i < e.cfg.MaxRounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("connect interrupted: %w", err)
		}
		ls := lineShapes(e.lines)
		added := e.round(e.pairs(ls, ls), obstacles)
		logger.Debug("connect round", "phase", "line-line", "round", i+1, "added", added)
		if added == 0 {
			break
		}
	}

	lines := dedupe(e.lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

// CheckBounds reports an OUT_OF_BOUNDS error for the first rectangle that
// does not lie inside the mask.
func (e *Engine) CheckBounds(rects []*geometry.Rectangle) error {
	for _, r := range rects {
		if !e.mask.Contains(r.Bounds()) {
			return errs.New(errs.CodeOutOfBounds, "rectangle %s outside %dx%d mask", r, e.mask.Width(), e.mask.Height())
		}
	}
	return nil
}

// pairs returns the unordered pairs of as × bs that have not been
// evaluated yet, and marks them evaluated.
func (e *Engine) pairs(as, bs []geometry.Shape) [][2]geometry.Shape {
	var out [][2]geometry.Shape
	for _, a := range as {
		for _, b := range bs {
			if a == b {
				continue
			}
			key := [2]geometry.Shape{a, b}
			if _, ok := e.evaluated[key]; ok {
				continue
			}
			if _, ok := e.evaluated[[2]geometry.Shape{b, a}]; ok {
				continue
			}
			e.evaluated[key] = struct{}{}
			out = append(out, [2]geometry.Shape{a, b})
		}
	}
	return out
}

// round evaluates pairs, converges their spans, and materializes the new
// lines. Lines crossing an obstacle interior are skipped. It returns the
// number of lines added.
func (e *Engine) round(pairs [][2]geometry.Shape, obstacles []*geometry.Rectangle) int {
	var cands []candidate
	for _, p := range pairs {
		cands = append(cands, e.evaluate(p[0], p[1])...)
	}

	var perAxis [2][]geometry.Interval
	for _, c := range cands {
		perAxis[c.axis] = append(perAxis[c.axis], c.span)
	}
	for axis, spans := range perAxis {
		e.registries[axis].converge(spans)
	}

	added := 0
	for _, c := range cands {
		pos, ok := e.registries[c.axis].resolve(c.span)
		if !ok {
			continue
		}
		start, end := c.endpoints(pos)
		if end.Distance(start) < float64(e.cfg.MinLineLength) {
			continue
		}
		l := geometry.NewLine(0, start, end)
		if crossesAny(l, obstacles) || e.known(l) {
			continue
		}
		l.ID = e.seq.Next()
		e.lines = append(e.lines, l)
		added++
	}
	return added
}

// evaluate finds the corridor spans between a and b.
func (e *Engine) evaluate(a, b geometry.Shape) []candidate {
	ab, bb := a.Bounds(), b.Bounds()
	axis, ok := ab.SpanningAxis(bb)
	if !ok {
		return nil
	}
	gap := ab.BoundingRange(bb, axis, e.cfg.LineDiscontinuity)
	if gap.Empty() {
		return nil
	}

	spans := e.scan(axis, ab.OverlapRange(bb, axis), gap)
	if len(spans) == 0 {
		return nil
	}
	if a.IsRectangle() || b.IsRectangle() {
		spans = spans[len(spans)/2 : len(spans)/2+1]
	}

	near, far := ab.Facing(bb, axis)
	out := make([]candidate, len(spans))
	for i, s := range spans {
		out[i] = candidate{axis: axis, span: s, near: near, far: far}
	}
	return out
}

// endpoints places the candidate at pos, from the near facing edge to the
// far one.
func (c candidate) endpoints(pos int) (geometry.Point, geometry.Point) {
	if c.axis == geometry.AxisX {
		return geometry.Point{X: pos, Y: c.near}, geometry.Point{X: pos, Y: c.far}
	}
	return geometry.Point{X: c.near, Y: pos}, geometry.Point{X: c.far, Y: pos}
}

func (e *Engine) known(l *geometry.Line) bool {
	for _, o := range e.lines {
		if o.SameGeometry(l) {
			return true
		}
	}
	return false
}

// Positions returns the number of canonical positions registered on each
// axis during the last run.
func (e *Engine) Positions() (x, y int) {
	if e.registries[0] == nil {
		return 0, 0
	}
	return e.registries[geometry.AxisX].len(), e.registries[geometry.AxisY].len()
}

func lineShapes(lines []*geometry.Line) []geometry.Shape {
	out := make([]geometry.Shape, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}
