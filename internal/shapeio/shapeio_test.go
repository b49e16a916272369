package shapeio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
)

func sampleRecords() ([]any, *geometry.Rectangle, *geometry.Line, *geometry.Node, *geometry.Node) {
	rect := geometry.NewRectangle(0, 10, 10, 20, 20)
	rect.AddLink("N1")
	rect.AddLink("L1")

	line := geometry.NewLine(1, geometry.Point{X: 20, Y: 30}, geometry.Point{X: 20, Y: 50})

	terminal := geometry.NewNode(1, rect.Centroid())
	terminal.Connection = rect.Identifier()
	travel := geometry.NewNode(2, geometry.Point{X: 20, Y: 40})
	terminal.Link(travel)

	return []any{rect.Record(), line.Record(), terminal.Record(), travel.Record()}, rect, line, terminal, travel
}

func TestRoundTrip(t *testing.T) {
	recs, rect, line, terminal, travel := sampleRecords()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteAll(recs))
	assert.Equal(t, 4, w.Count())
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	shapes, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, shapes.Rectangles, 1)
	require.Len(t, shapes.Lines, 1)
	require.Len(t, shapes.Nodes, 2)

	assert.Equal(t, rect, shapes.Rectangles[0])
	assert.Equal(t, line, shapes.Lines[0])
	assert.Equal(t, terminal, shapes.Nodes[0])
	assert.Equal(t, travel, shapes.Nodes[1])
}

func TestWrite_TravelNodeConnectionIsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Write(geometry.NewNode(3, geometry.Point{X: 1, Y: 2}).Record()))
	assert.Equal(t, `{"type":"node","id":3,"x":1,"y":2,"links":{},"connection":null}`+"\n", buf.String())
}

func TestReadAll_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", `{"type":"circle","id":1}`},
		{"malformed", `{"type":`},
		{"bad field", `{"type":"rectangle","id":"one"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.CodeInvalidArgument))
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestReadAll_SkipsBlankLines(t *testing.T) {
	input := "\n" + `{"type":"rectangle","id":4,"x":0,"y":0,"w":5,"h":5,"cluster":2}` + "\n\n"
	shapes, err := ReadAll(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, shapes.Rectangles, 1)
	assert.Equal(t, 2, shapes.Rectangles[0].Cluster)
}

func TestFileRoundTrip(t *testing.T) {
	recs, rect, _, _, _ := sampleRecords()
	path := filepath.Join(t.TempDir(), "plan.ndjson")

	require.NoError(t, WriteFile(path, recs))
	shapes, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rect, shapes.Rectangles[0])

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.ndjson"))
	assert.Error(t, err)
}
