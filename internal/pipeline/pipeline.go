package pipeline

import (
	"context"
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/detection"
	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-mcp/internal/logging"
	"github.com/ironsheep/floorplan-mcp/internal/metrics"
	"github.com/ironsheep/floorplan-mcp/internal/ocr"
)

// textConfidence is the minimum confidence for a word or text window to be
// cleared from the mask.
const textConfidence = 0.5

// TextFinder locates lettering in a processed image.
type TextFinder func(img image.Image, minConfidence float64) ([]geometry.Bounds, error)

// Pipeline runs engine invocations over images and preprocessing variants.
// It is safe for concurrent use.
type Pipeline struct {
	cfg      config.Config
	variants []imaging.Variant
	metrics  *metrics.Collector
	findText TextFinder
	cache    *imaging.ImageCache
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records every invocation on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// WithTextFinder replaces the OCR text finder. An UNAVAILABLE error from
// the finder selects the heuristic detector instead.
func WithTextFinder(f TextFinder) Option {
	return func(p *Pipeline) { p.findText = f }
}

// WithCache shares an image cache with the caller.
func WithCache(c *imaging.ImageCache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// New validates cfg and parses its preprocessing variants. With
// Pipeline.AllVariants set the combinatorial variants are used instead.
func New(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variants, err := imaging.ParseVariants(cfg.Pipeline.Variants)
	if err != nil {
		return nil, err
	}
	if cfg.Pipeline.AllVariants {
		variants = imaging.CombinatorialVariants()
	}

	p := &Pipeline{cfg: cfg, variants: variants, findText: ocr.TextRegions}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = imaging.NewImageCache()
	}
	return p, nil
}

// Variants returns the parsed preprocessing variants in configured order.
func (p *Pipeline) Variants() []imaging.Variant {
	return append([]imaging.Variant(nil), p.variants...)
}

// ProcessImage runs one invocation per variant of img concurrently and
// returns the results ranked by rectangle count. Invocation failures are
// reported on Result.Err.
func (p *Pipeline) ProcessImage(ctx context.Context, name string, img image.Image) []*Result {
	results := make([]*Result, len(p.variants))

	var g errgroup.Group
	g.SetLimit(p.cfg.Pipeline.Workers)
	for i, v := range p.variants {
		i, v := i, v
		g.Go(func() error {
			results[i] = p.invoke(ctx, name, img, v)
			return nil
		})
	}
	_ = g.Wait()

	Rank(results)
	return results
}

// ImageResults are the ranked results for one image file.
type ImageResults struct {
	Path    string    `json:"path"`
	Results []*Result `json:"results"`
	Err     error     `json:"-"`
}

// Best returns the highest ranked successful result, or nil.
func (ir ImageResults) Best() *Result {
	for _, r := range ir.Results {
		if r.Err == nil {
			return r
		}
	}
	return nil
}

// ProcessImages loads every path and processes it. Images are processed
// concurrently; a path that cannot be decoded is reported on its
// ImageResults and does not affect the others.
func (p *Pipeline) ProcessImages(ctx context.Context, paths []string) []ImageResults {
	out := make([]ImageResults, len(paths))

	var g errgroup.Group
	g.SetLimit(max(1, p.cfg.Pipeline.Workers/max(1, len(p.variants))))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			out[i].Path = path
			img, err := p.cache.Load(path)
			if err != nil {
				logging.FromContext(ctx).Warn("skipping image", "path", path, "err", err)
				out[i].Err = err
				return nil
			}
			out[i].Results = p.ProcessImage(ctx, path, img)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// invoke runs one variant of img end to end.
func (p *Pipeline) invoke(ctx context.Context, name string, img image.Image, v imaging.Variant) *Result {
	start := time.Now()
	runID := uuid.NewString()
	logger := logging.FromContext(ctx).With("run", runID, "variant", v.String())
	ctx = logging.WithLogger(ctx, logger)

	res, err := p.run(ctx, img, v)
	if err != nil {
		res = &Result{UpscaleFactor: v.UpscaleFactor(), Err: err}
	}
	res.RunID = runID
	res.Image = name
	res.Variant = v.String()
	res.Duration = time.Since(start)

	p.metrics.Observe(err, res.Duration, len(res.Rectangles), len(res.Lines), len(res.Nodes))
	if err != nil {
		logger.Error("invocation failed", "err", err, "duration", res.Duration)
		return res
	}
	logger.Info("invocation complete",
		"rects", len(res.Rectangles),
		"lines", len(res.Lines),
		"nodes", len(res.Nodes),
		"clusters", res.Clusters.Clusters,
		"duration", res.Duration,
	)
	return res
}

func (p *Pipeline) run(ctx context.Context, img image.Image, v imaging.Variant) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("invocation not started: %w", err)
	}
	logger := logging.FromContext(ctx)

	processed, factor := imaging.Preprocess(img, v)
	mask := ObstacleMask(processed, p.cfg.Detection)

	textPixels := 0
	if p.cfg.Detection.SuppressText {
		regions, err := p.textRegions(processed, mask)
		if err != nil {
			return nil, err
		}
		textPixels = detection.SuppressRegions(mask, regions)
		logger.Debug("text suppressed", "regions", len(regions), "pixels", textPixels)
	}

	orig := img.Bounds()
	det := detection.DetectRectangles(mask, detection.NewOptions(p.cfg.Detection, orig.Dx(), orig.Dy(), factor))
	logger.Debug("rectangles detected", "count", det.Count, "regions", det.Regions)

	res, err := Analyze(ctx, det.Rectangles, mask, p.cfg.WithUpscale(factor).Scaled())
	if err != nil {
		return nil, err
	}
	res.TextPixels = textPixels
	return res, nil
}

// ObstacleMask builds the obstacle mask of a processed image: Canny edges,
// optionally dilated, plus dark ink when cfg.InkLightness is set.
func ObstacleMask(processed image.Image, cfg config.DetectionConfig) *imaging.Mask {
	mask := imaging.EdgeDetect(processed, cfg.LowThreshold, cfg.HighThreshold)
	if cfg.DilateRadius > 0 {
		mask = mask.Dilate(cfg.DilateRadius)
	}
	if cfg.InkLightness > 0 {
		// Both masks come from the same image, so sizes always match.
		_ = mask.Union(imaging.FromInk(processed, cfg.InkLightness))
	}
	return mask
}

// textRegions asks the text finder for lettering and falls back to the
// edge-density heuristic when OCR is not available.
func (p *Pipeline) textRegions(img image.Image, mask *imaging.Mask) ([]geometry.Bounds, error) {
	if p.findText != nil {
		regions, err := p.findText(img, textConfidence)
		if err == nil {
			return regions, nil
		}
		if !errs.Is(err, errs.CodeUnavailable) {
			return nil, fmt.Errorf("text suppression: %w", err)
		}
	}

	found := detection.DetectTextRegions(mask, textConfidence)
	regions := make([]geometry.Bounds, len(found.Regions))
	for i, r := range found.Regions {
		regions[i] = r.Bounds
	}
	return regions, nil
}

// Rank orders results by rectangle count, most first. Failed results sort
// last. Ties keep their relative order.
func Rank(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return len(a.Rectangles) > len(b.Rectangles)
	})
}
