package pipeline

import (
	"context"
	"time"

	"github.com/ironsheep/floorplan-mcp/internal/cluster"
	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/connect"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/graph"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
)

// Result is the outcome of one engine invocation.
type Result struct {
	RunID   string `json:"run_id"`
	Image   string `json:"image,omitempty"`
	Variant string `json:"variant,omitempty"`

	// UpscaleFactor is the scale of the coordinates below relative to the
	// original image.
	UpscaleFactor int `json:"upscale_factor"`
	Width         int `json:"width"`
	Height        int `json:"height"`

	Rectangles []*geometry.Rectangle `json:"rectangles"`
	Lines      []*geometry.Line      `json:"lines"`
	Nodes      []*geometry.Node      `json:"nodes"`
	Clusters   cluster.Summary       `json:"clusters"`

	// TextPixels is the number of mask pixels cleared by text suppression.
	TextPixels int           `json:"text_pixels,omitempty"`
	Duration   time.Duration `json:"duration"`

	// Err is set when the invocation failed; the shape fields are then empty.
	Err error `json:"-"`
}

// Records returns the serializable form of every shape, rectangles first,
// then lines, then nodes.
func (r *Result) Records() []any {
	out := make([]any, 0, len(r.Rectangles)+len(r.Lines)+len(r.Nodes))
	for _, rect := range r.Rectangles {
		out = append(out, rect.Record())
	}
	for _, l := range r.Lines {
		out = append(out, l.Record())
	}
	for _, n := range r.Nodes {
		out = append(out, n.Record())
	}
	return out
}

// Analyze runs one engine invocation: cluster, connect, then build the
// graph. rects are annotated in place; rectangles rejected as outliers are
// left out of the result. Line and node ids start at 1.
//
// The connect configuration and rectangle bounds are checked before any
// rectangle is touched.
func Analyze(ctx context.Context, rects []*geometry.Rectangle, mask *imaging.Mask, cfg config.Config) (*Result, error) {
	start := time.Now()

	engine, err := connect.New(mask, cfg.Connect, geometry.NewSequence(1))
	if err != nil {
		return nil, err
	}
	if err := engine.CheckBounds(rects); err != nil {
		return nil, err
	}

	kept, err := cluster.Cluster(rects, cfg.Cluster)
	if err != nil {
		return nil, err
	}

	lines, err := engine.Connect(ctx, kept)
	if err != nil {
		return nil, err
	}

	nodes := graph.Build(kept, lines, geometry.NewSequence(1))

	res := &Result{
		UpscaleFactor: max(cfg.UpscaleFactor, 1),
		Rectangles:    kept,
		Lines:         lines,
		Nodes:         nodes,
		Clusters:      cluster.Summarize(kept),
		Width:         mask.Width(),
		Height:        mask.Height(),
		Duration:      time.Since(start),
	}
	return res, nil
}
