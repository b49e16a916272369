package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the floor-plan image (PNG, JPEG or GIF)",
}

var rectanglesProperty = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{"type": "integer"},
			"x":  map[string]interface{}{"type": "integer", "description": "Left edge"},
			"y":  map[string]interface{}{"type": "integer", "description": "Top edge"},
			"w":  map[string]interface{}{"type": "integer", "description": "Width"},
			"h":  map[string]interface{}{"type": "integer", "description": "Height"},
		},
		"required": []string{"id", "x", "y", "w", "h"},
	},
	"description": "Room rectangles in image pixel coordinates",
}

var modeProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"size", "distance"},
	"description": "Cluster by room area (size) or by room centroid (distance). Default distance",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a floor-plan image and return its dimensions, format and the minimum room area used by detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if it is cached",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_analyze",
			Description: "Detect rooms in a floor-plan image, connect them with corridor lines and build the navigation graph. Runs every preprocessing variant and returns the variant that found the most rooms. Coordinates are in the processed image; divide by upscale_factor for the original.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"variants": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string", "enum": []string{"EC", "BL", "TH", "US"}},
						},
						"description": "Optional preprocessing variants, e.g. [[\"US\",\"TH\",\"US\",\"EC\"]]. Defaults to the configured variants",
					},
					"mode": modeProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "floorplan_connect",
			Description: "Connect known room rectangles through the corridors of a floor-plan image. Walls in the image block corridors. Returns the corridor lines and the navigation graph nodes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty,
					"rectangles": rectanglesProperty,
					"upscale_factor": map[string]interface{}{
						"type":        "integer",
						"description": "Scale the image by this power of two before connecting; rectangles must be given at that scale. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path", "rectangles"},
			},
		},
		{
			Name:        "floorplan_cluster",
			Description: "Group room rectangles into clusters by size or position. Rooms whose area is an outlier are dropped; rooms alone in their cluster are labelled -1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rectangles": rectanglesProperty,
					"mode":       modeProperty,
					"min_clusters": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum number of clusters (default 3)",
					},
					"max_clusters": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of clusters (default 15)",
					},
				},
				"required": []string{"rectangles"},
			},
		},
		{
			Name:        "ocr_status",
			Description: "Report whether Tesseract OCR is available for text suppression.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
