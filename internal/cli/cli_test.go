package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/floorplan-mcp/internal/shapeio"
)

const testConfig = `
[connect]
min_line_length = 5

[detection]
area_factor = 16

[pipeline]
workers = 2
variants = [["BL"]]
`

func writePlan(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range []image.Rectangle{image.Rect(10, 10, 50, 50), image.Rect(10, 70, 50, 110)} {
		for x := r.Min.X; x <= r.Max.X; x++ {
			for d := 0; d < 2; d++ {
				img.Set(x, r.Min.Y+d, color.Black)
				img.Set(x, r.Max.Y-d, color.Black)
			}
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for d := 0; d < 2; d++ {
				img.Set(r.Min.X+d, y, color.Black)
				img.Set(r.Max.X-d, y, color.Black)
			}
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "unknown", "unknown") })

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "floorplan-mcp 1.2.3")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "built: 2026-01-01")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"analyze", "serve", "version"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	plans := filepath.Join(dir, "plans")
	require.NoError(t, os.Mkdir(plans, 0o755))
	writePlan(t, filepath.Join(plans, "level1.png"))
	require.NoError(t, os.WriteFile(filepath.Join(plans, "notes.txt"), []byte("skip me"), 0o644))

	cfgPath := filepath.Join(dir, "floorplan.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))

	outDir := filepath.Join(dir, "out")
	metricsPath := filepath.Join(dir, "floorplan.prom")

	_, err := run(t, "analyze", "-i", plans, "-o", outDir, "-c", cfgPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	shapes, err := shapeio.ReadFile(filepath.Join(outDir, "level1.ndjson"))
	require.NoError(t, err)
	require.Len(t, shapes.Rectangles, 2)
	top, bottom := shapes.Rectangles[0].Centroid().Y, shapes.Rectangles[1].Centroid().Y
	if top > bottom {
		top, bottom = bottom, top
	}
	assert.Less(t, top, 60)
	assert.Greater(t, bottom, 60)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(prom), "floorplan_invocations_total"))
}

func TestAnalyze_AllVariantsFlag(t *testing.T) {
	cmd := newAnalyzeCmd()
	flag := cmd.Flags().Lookup("all-variants")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestAnalyze_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"analyze"}},
		{"input does not exist", []string{"analyze", "-i", filepath.Join(dir, "nope.png")}},
		{"no images in directory", []string{"analyze", "-i", dir, "-o", dir}},
		{"unsupported config", []string{"analyze", "-i", dir, "-c", filepath.Join(dir, "cfg.ini")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestAnalyze_AllImagesFail(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))

	_, err := run(t, "analyze", "-i", bad, "-o", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 images failed")
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	paths, err := collectImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}, paths)

	single, err := collectImages(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "level1.ndjson", outputName("plans/level1.png"))
	assert.Equal(t, "plan.v2.ndjson", outputName("/tmp/plan.v2.jpeg"))
}

func TestServe(t *testing.T) {
	cmd := NewRootCommand()
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	var out bytes.Buffer
	cmd.SetIn(in)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), `"id":1`)
}
