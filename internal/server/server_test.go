package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/floorplan-mcp/internal/config"
	"github.com/ironsheep/floorplan-mcp/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Connect.MinLineLength = 5
	cfg.Pipeline.Workers = 2
	cfg.Pipeline.Variants = [][]string{{"BL"}}

	s, err := New(cfg, logging.New(io.Discard, log.DebugLevel))
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.cache, "New() did not initialize cache")
	assert.NotNil(t, s.pipeline, "New() did not initialize pipeline")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cluster.Mode = "area"
	_, err := New(cfg, nil)
	assert.Error(t, err, "New should reject an invalid config")
}

func TestServe_Session(t *testing.T) {
	s := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), &out))

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), "invalid response line %q", scanner.Text())
		responses = append(responses, resp)
	}

	require.Len(t, responses, 4)
	for i, want := range []float64{1, 2, 3, 4} {
		assert.Equal(t, want, responses[i].ID, "response %d", i)
	}

	info := responses[0].Result.(map[string]interface{})["serverInfo"].(map[string]interface{})
	assert.Equal(t, Name, info["name"])
	require.NotNil(t, responses[3].Error)
	assert.Equal(t, -32601, responses[3].Error.Code, "unknown method")
}

func TestServe_CancelledContext(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`), &out)
	assert.Error(t, err, "Serve should stop on a cancelled context")
	assert.Zero(t, out.Len(), "no response expected")
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))
			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantMethod, req.Method)
		})
	}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expected := []string{"image_load", "floorplan_analyze", "floorplan_connect", "floorplan_cluster", "ocr_status"}
	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expected {
		tool, ok := toolMap[name]
		if !assert.True(t, ok, "expected tool %s", name) {
			continue
		}
		assert.NotEmpty(t, tool.Description, name)
		assert.Equal(t, "object", tool.InputSchema["type"], name)
	}
	assert.Len(t, tools, len(expected))
}
