package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
)

// Cluster modes.
const (
	ModeSize     = "size"
	ModeDistance = "distance"
)

// Config is the complete engine and pipeline configuration.
type Config struct {
	Cluster   ClusterConfig   `toml:"cluster" yaml:"cluster" json:"cluster"`
	Connect   ConnectConfig   `toml:"connect" yaml:"connect" json:"connect"`
	Detection DetectionConfig `toml:"detection" yaml:"detection" json:"detection"`
	Pipeline  PipelineConfig  `toml:"pipeline" yaml:"pipeline" json:"pipeline"`

	// UpscaleFactor is the cumulative scale of the image the engine runs on,
	// relative to the original.
	UpscaleFactor int `toml:"upscale_factor" yaml:"upscale_factor" json:"upscale_factor" validate:"gte=1"`
}

// ClusterConfig controls the Cluster Engine.
type ClusterConfig struct {
	Mode         string  `toml:"mode" yaml:"mode" json:"mode" validate:"oneof=size distance"`
	MinClusters  int     `toml:"min_clusters" yaml:"min_clusters" json:"min_clusters" validate:"gte=1"`
	MaxClusters  int     `toml:"max_clusters" yaml:"max_clusters" json:"max_clusters" validate:"gtefield=MinClusters"`
	Seed         int64   `toml:"seed" yaml:"seed" json:"seed"`
	Restarts     int     `toml:"restarts" yaml:"restarts" json:"restarts" validate:"gte=1"`
	OutlierSigma float64 `toml:"outlier_sigma" yaml:"outlier_sigma" json:"outlier_sigma" validate:"gt=0"`
}

// ConnectConfig controls the Connectivity Engine. Distances are in pixels.
type ConnectConfig struct {
	LineDiscontinuity int `toml:"line_discontinuity" yaml:"line_discontinuity" json:"line_discontinuity" validate:"gt=0"`
	SpanDiscontinuity int `toml:"span_discontinuity" yaml:"span_discontinuity" json:"span_discontinuity" validate:"gte=0"`
	MinSpanLength     int `toml:"min_span_length" yaml:"min_span_length" json:"min_span_length" validate:"gt=0"`
	MinLineLength     int `toml:"min_line_length" yaml:"min_line_length" json:"min_line_length" validate:"gte=0"`
	MaxRounds         int `toml:"max_rounds" yaml:"max_rounds" json:"max_rounds" validate:"gte=1"`
}

// DetectionConfig controls the image front end.
type DetectionConfig struct {
	// AreaFactor divides the image area to obtain the minimum rectangle area.
	AreaFactor     float64 `toml:"area_factor" yaml:"area_factor" json:"area_factor" validate:"gt=0"`
	MaxAspectRatio float64 `toml:"max_aspect_ratio" yaml:"max_aspect_ratio" json:"max_aspect_ratio" validate:"gt=1"`
	// Canny thresholds; zero derives both from the median intensity.
	LowThreshold  float64 `toml:"low_threshold" yaml:"low_threshold" json:"low_threshold" validate:"gte=0"`
	HighThreshold float64 `toml:"high_threshold" yaml:"high_threshold" json:"high_threshold" validate:"gte=0"`
	// DilateRadius thickens the obstacle mask; zero disables dilation.
	DilateRadius float64 `toml:"dilate_radius" yaml:"dilate_radius" json:"dilate_radius" validate:"gte=0"`
	// InkLightness adds every pixel darker than this CIE-Lab lightness (0-1)
	// to the edge mask so filled walls block corridors; zero disables it.
	InkLightness float64 `toml:"ink_lightness" yaml:"ink_lightness" json:"ink_lightness" validate:"gte=0,lte=1"`
	// SuppressText clears OCR word boxes from the mask when OCR is available.
	SuppressText bool `toml:"suppress_text" yaml:"suppress_text" json:"suppress_text"`
}

// PipelineConfig controls fan-out over preprocessing variants.
type PipelineConfig struct {
	Workers int `toml:"workers" yaml:"workers" json:"workers" validate:"gte=1"`
	// Variants lists preprocessing step sequences, e.g. ["US", "TH", "US", "EC"].
	Variants [][]string `toml:"variants" yaml:"variants" json:"variants" validate:"min=1,dive,min=1,dive,oneof=EC BL TH US"`
	// AllVariants replaces Variants with every combinatorial variant
	// (see imaging.CombinatorialVariants).
	AllVariants bool `toml:"all_variants" yaml:"all_variants" json:"all_variants"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cluster: ClusterConfig{
			Mode:         ModeDistance,
			MinClusters:  3,
			MaxClusters:  15,
			Seed:         42,
			Restarts:     10,
			OutlierSigma: 2,
		},
		Connect: ConnectConfig{
			LineDiscontinuity: 2,
			SpanDiscontinuity: 3,
			MinSpanLength:     5,
			MinLineLength:     10,
			MaxRounds:         8,
		},
		Detection: DetectionConfig{
			AreaFactor:     9600,
			MaxAspectRatio: 3,
		},
		Pipeline: PipelineConfig{
			Workers: runtime.GOMAXPROCS(0),
			Variants: [][]string{
				{"US", "TH", "US", "EC"},
				{"EC", "US", "TH", "BL", "US"},
				{"EC", "US", "TH", "US", "BL"},
				{"US", "TH", "EC", "US", "BL"},
			},
		},
		UpscaleFactor: 1,
	}
}

// Load reads a configuration file over the defaults. The format is chosen
// by extension. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errs.Wrap(errs.CodeInvalidArgument, err, "failed to parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errs.New(errs.CodeInvalidArgument, "unknown config key %q in %s", undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errs.Wrap(errs.CodeInvalidArgument, err, "failed to parse %s", path)
		}
	default:
		return cfg, errs.New(errs.CodeInvalidArgument, "unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return errs.New(errs.CodeInvalidArgument, "invalid config: %s", strings.Join(msgs, "; "))
	}
	return errs.Wrap(errs.CodeInvalidArgument, err, "invalid config")
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Scaled returns a copy whose connectivity distances are multiplied by
// UpscaleFactor. Apply it once, to the configuration of the upscaled image.
func (c Config) Scaled() Config {
	f := c.UpscaleFactor
	if f <= 1 {
		return c
	}
	c.Connect.LineDiscontinuity *= f
	c.Connect.SpanDiscontinuity *= f
	c.Connect.MinSpanLength *= f
	c.Connect.MinLineLength *= f
	return c
}

// WithUpscale returns a copy with UpscaleFactor set to f.
func (c Config) WithUpscale(f int) Config {
	c.UpscaleFactor = f
	return c
}
