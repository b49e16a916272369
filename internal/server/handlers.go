package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/floorplan-mcp/internal/cluster"
	"github.com/ironsheep/floorplan-mcp/internal/connect"
	"github.com/ironsheep/floorplan-mcp/internal/errs"
	"github.com/ironsheep/floorplan-mcp/internal/geometry"
	"github.com/ironsheep/floorplan-mcp/internal/graph"
	"github.com/ironsheep/floorplan-mcp/internal/imaging"
	"github.com/ironsheep/floorplan-mcp/internal/ocr"
	"github.com/ironsheep/floorplan-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "floorplan_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tool call.
type ToolError struct {
	Code   errs.Code `json:"code"`
	Detail string    `json:"detail"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a ToolError as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{
			Code:   errs.CodeOf(err),
			Detail: err.Error(),
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "floorplan_analyze":
		return s.handleAnalyze(ctx, args)
	case "floorplan_connect":
		return s.handleConnect(ctx, args)
	case "floorplan_cluster":
		return s.handleCluster(args)
	case "ocr_status":
		return ocr.Available(), nil
	default:
		return nil, errs.New(errs.CodeInvalidArgument, "unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

var validate = validator.New()

// decodeArgs unmarshals and validates tool arguments.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return errs.Wrap(errs.CodeInvalidArgument, err, "invalid arguments")
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.Wrap(errs.CodeInvalidArgument, err, "invalid arguments")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errs.New(errs.CodeInvalidArgument, "invalid arguments: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path" validate:"required"`
	// Reload drops any cached copy so edits on disk are picked up.
	Reload bool `json:"reload"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path, s.cfg.Detection.AreaFactor)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "load %s", a.Path)
	}
	return info, nil
}

// === Floor-Plan Handlers ===

type rectangleArg struct {
	ID int `json:"id"`
	X  int `json:"x" validate:"gte=0"`
	Y  int `json:"y" validate:"gte=0"`
	W  int `json:"w" validate:"gte=0"`
	H  int `json:"h" validate:"gte=0"`
}

func toRectangles(args []rectangleArg) []*geometry.Rectangle {
	rects := make([]*geometry.Rectangle, len(args))
	for i, a := range args {
		rects[i] = geometry.NewRectangle(a.ID, a.X, a.Y, a.W, a.H)
	}
	return rects
}

type analyzeArgs struct {
	Path     string     `json:"path" validate:"required"`
	Variants [][]string `json:"variants" validate:"omitempty,dive,min=1,dive,oneof=EC BL TH US"`
	Mode     string     `json:"mode" validate:"omitempty,oneof=size distance"`
}

// VariantSummary describes one ranked invocation of floorplan_analyze.
type VariantSummary struct {
	Variant    string `json:"variant"`
	RunID      string `json:"run_id"`
	Rectangles int    `json:"rectangles"`
	Lines      int    `json:"lines"`
	Nodes      int    `json:"nodes"`
	Error      string `json:"error,omitempty"`
}

// AnalyzeResult is the floorplan_analyze response.
type AnalyzeResult struct {
	Best     *pipeline.Result `json:"best"`
	Variants []VariantSummary `json:"variants"`
}

func (s *Server) handleAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	p := s.pipeline
	if len(a.Variants) > 0 || a.Mode != "" {
		cfg := s.cfg
		if len(a.Variants) > 0 {
			cfg.Pipeline.Variants = a.Variants
		}
		if a.Mode != "" {
			cfg.Cluster.Mode = a.Mode
		}
		opts := append([]pipeline.Option{pipeline.WithCache(s.cache)}, s.opts...)
		var err error
		if p, err = pipeline.New(cfg, opts...); err != nil {
			return nil, err
		}
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "load %s", a.Path)
	}

	results := p.ProcessImage(ctx, a.Path, img)
	out := AnalyzeResult{Variants: make([]VariantSummary, len(results))}
	for i, r := range results {
		out.Variants[i] = VariantSummary{
			Variant:    r.Variant,
			RunID:      r.RunID,
			Rectangles: len(r.Rectangles),
			Lines:      len(r.Lines),
			Nodes:      len(r.Nodes),
		}
		if r.Err != nil {
			out.Variants[i].Error = r.Err.Error()
		} else if out.Best == nil {
			out.Best = r
		}
	}
	if out.Best == nil && len(results) > 0 {
		return nil, fmt.Errorf("every variant failed: %w", results[0].Err)
	}
	return out, nil
}

type connectArgs struct {
	Path          string         `json:"path" validate:"required"`
	Rectangles    []rectangleArg `json:"rectangles" validate:"dive"`
	UpscaleFactor int            `json:"upscale_factor" validate:"omitempty,oneof=1 2 4 8"`
}

// ConnectResult is the floorplan_connect response.
type ConnectResult struct {
	UpscaleFactor int                   `json:"upscale_factor"`
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	Rectangles    []*geometry.Rectangle `json:"rectangles"`
	Lines         []*geometry.Line      `json:"lines"`
	Nodes         []*geometry.Node      `json:"nodes"`
}

func (s *Server) handleConnect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a connectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidArgument, err, "load %s", a.Path)
	}

	var variant imaging.Variant
	for f := max(a.UpscaleFactor, 1); f > 1; f /= 2 {
		variant = append(variant, imaging.StepUpscale)
	}
	processed, factor := imaging.Preprocess(img, variant)

	mask := pipeline.ObstacleMask(processed, s.cfg.Detection)

	cfg := s.cfg.WithUpscale(factor).Scaled()
	rects := toRectangles(a.Rectangles)
	lines, err := connect.Connect(ctx, mask, rects, cfg.Connect, nil)
	if err != nil {
		return nil, err
	}

	return ConnectResult{
		UpscaleFactor: factor,
		Width:         mask.Width(),
		Height:        mask.Height(),
		Rectangles:    rects,
		Lines:         lines,
		Nodes:         graph.Build(rects, lines, nil),
	}, nil
}

type clusterArgs struct {
	Rectangles  []rectangleArg `json:"rectangles" validate:"dive"`
	Mode        string         `json:"mode" validate:"omitempty,oneof=size distance"`
	MinClusters int            `json:"min_clusters" validate:"omitempty,gte=1"`
	MaxClusters int            `json:"max_clusters" validate:"omitempty,gte=1"`
}

// ClusterResult is the floorplan_cluster response.
type ClusterResult struct {
	Rectangles []*geometry.Rectangle `json:"rectangles"`
	Summary    cluster.Summary       `json:"summary"`
	Outliers   int                   `json:"outliers"`
}

func (s *Server) handleCluster(args json.RawMessage) (interface{}, error) {
	var a clusterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := s.cfg.Cluster
	if a.Mode != "" {
		cfg.Mode = a.Mode
	}
	if a.MinClusters > 0 {
		cfg.MinClusters = a.MinClusters
	}
	if a.MaxClusters > 0 {
		cfg.MaxClusters = a.MaxClusters
	}
	if cfg.MaxClusters < cfg.MinClusters {
		return nil, errs.New(errs.CodeInvalidArgument, "max_clusters %d is below min_clusters %d", cfg.MaxClusters, cfg.MinClusters)
	}

	rects := toRectangles(a.Rectangles)
	kept, err := cluster.Cluster(rects, cfg)
	if err != nil {
		return nil, err
	}
	return ClusterResult{
		Rectangles: kept,
		Summary:    cluster.Summarize(kept),
		Outliers:   len(rects) - len(kept),
	}, nil
}
