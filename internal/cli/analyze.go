package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-mcp/internal/logging"
	"github.com/ironsheep/floorplan-mcp/internal/metrics"
	"github.com/ironsheep/floorplan-mcp/internal/pipeline"
	"github.com/ironsheep/floorplan-mcp/internal/shapeio"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	input       string // image file or directory of images
	output      string // directory for .ndjson results
	config      string // TOML or YAML config file
	metricsFile string // Prometheus textfile output
	allVariants bool   // run every combinatorial variant
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze floor-plan images and write shapes as line-delimited JSON",
		Long: `Analyze detects rooms in each image, connects them with corridor lines and
builds the navigation graph. Every configured preprocessing variant is tried
and the variant that finds the most rooms is written to <output>/<name>.ndjson.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "image file or directory (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.allVariants, "all-variants", false, "try every combinatorial preprocessing variant instead of the configured ones")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runAnalyze(ctx context.Context, opts *analyzeOpts) error {
	logger := logging.FromContext(ctx)
	start := time.Now()

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.allVariants {
		cfg.Pipeline.AllVariants = true
	}
	paths, err := collectImages(opts.input)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	collector := metrics.NewCollector(metrics.Namespace)
	p, err := pipeline.New(cfg, pipeline.WithMetrics(collector))
	if err != nil {
		return err
	}

	logger.Info("analyzing", "images", len(paths), "variants", len(p.Variants()), "workers", cfg.Pipeline.Workers)

	failed := 0
	for _, ir := range p.ProcessImages(ctx, paths) {
		best := ir.Best()
		if best == nil {
			failed++
			logger.Error("no result", "image", ir.Path, "err", firstError(ir))
			continue
		}

		out := filepath.Join(opts.output, outputName(ir.Path))
		if err := shapeio.WriteFile(out, best.Records()); err != nil {
			return err
		}
		logger.Info("wrote shapes",
			"image", ir.Path,
			"variant", best.Variant,
			"rects", len(best.Rectangles),
			"lines", len(best.Lines),
			"nodes", len(best.Nodes),
			"file", out,
		)
	}

	if opts.metricsFile != "" {
		if err := collector.WriteFile(opts.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Infof("Analyzed %d images (%s)", len(paths)-failed, time.Since(start).Round(time.Millisecond))
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed == len(paths) {
		return fmt.Errorf("all %d images failed", failed)
	}
	return nil
}

// collectImages returns input itself when it is a file, or the supported
// images directly inside it, sorted by name.
func collectImages(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "input %s", input)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "read %s", input)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imaging.IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(input, e.Name()))
	}
	if len(paths) == 0 {
		return nil, errs.New(errs.CodeInvalidArgument, "no images in %s", input)
	}
	sort.Strings(paths)
	return paths, nil
}

// outputName maps "plans/level1.png" to "level1.ndjson".
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ndjson"
}

func firstError(ir pipeline.ImageResults) error {
	if ir.Err != nil {
		return ir.Err
	}
	for _, r := range ir.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
