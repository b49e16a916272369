package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
)

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ModeDistance, cfg.Cluster.Mode)
	assert.Equal(t, 3, cfg.Cluster.MinClusters)
	assert.Equal(t, 15, cfg.Cluster.MaxClusters)
	assert.Equal(t, int64(42), cfg.Cluster.Seed)
	assert.Equal(t, 2, cfg.Connect.LineDiscontinuity)
	assert.Equal(t, 10, cfg.Connect.MinLineLength)
	assert.Len(t, cfg.Pipeline.Variants, 4)
	assert.GreaterOrEqual(t, cfg.Pipeline.Workers, 1)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown mode", func(c *Config) { c.Cluster.Mode = "area" }, "Mode"},
		{"zero line discontinuity", func(c *Config) { c.Connect.LineDiscontinuity = 0 }, "LineDiscontinuity"},
		{"negative span discontinuity", func(c *Config) { c.Connect.SpanDiscontinuity = -1 }, "SpanDiscontinuity"},
		{"zero min span", func(c *Config) { c.Connect.MinSpanLength = 0 }, "MinSpanLength"},
		{"max below min clusters", func(c *Config) { c.Cluster.MaxClusters = 2 }, "MaxClusters"},
		{"unknown step", func(c *Config) { c.Pipeline.Variants = [][]string{{"EC", "XX"}} }, "Variants"},
		{"empty variant", func(c *Config) { c.Pipeline.Variants = [][]string{{}} }, "Variants"},
		{"zero upscale", func(c *Config) { c.UpscaleFactor = 0 }, "UpscaleFactor"},
		{"ink lightness above one", func(c *Config) { c.Detection.InkLightness = 1.5 }, "InkLightness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestScaled(t *testing.T) {
	cfg := Default().WithUpscale(4).Scaled()
	assert.Equal(t, 8, cfg.Connect.LineDiscontinuity)
	assert.Equal(t, 12, cfg.Connect.SpanDiscontinuity)
	assert.Equal(t, 20, cfg.Connect.MinSpanLength)
	assert.Equal(t, 40, cfg.Connect.MinLineLength)
	assert.Equal(t, 8, cfg.Connect.MaxRounds)

	unchanged := Default().Scaled()
	assert.Equal(t, Default().Connect, unchanged.Connect)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "engine.toml", `
upscale_factor = 2

[cluster]
mode = "size"

[connect]
min_line_length = 6
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeSize, cfg.Cluster.Mode)
	assert.Equal(t, 6, cfg.Connect.MinLineLength)
	assert.Equal(t, 2, cfg.UpscaleFactor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2, cfg.Connect.LineDiscontinuity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "engine.yaml", `
cluster:
  mode: distance
  seed: 7
pipeline:
  workers: 2
  variants:
    - [EC, US]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Cluster.Seed)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, [][]string{{"EC", "US"}}, cfg.Pipeline.Variants)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "[connect]\nbogus = 1\n"))
		assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
	})
	t.Run("unknown yaml key", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yml", "connect:\n  bogus: 1\n"))
		assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
	})
	t.Run("invalid value", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "[cluster]\nmode = \"area\"\n"))
		assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
	})
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "engine.ini", "x=1"))
		assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default().Connect, cfg.Connect)
	})
}
