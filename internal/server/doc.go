// Package server implements the MCP (Model Context Protocol) server for
// floor-plan analysis.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr only, as stdout carries the protocol.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its size and minimum room area
//   - floorplan_analyze: Image path to rooms, corridor lines and graph nodes
//   - floorplan_connect: Known rooms plus image path to lines and nodes
//   - floorplan_cluster: Cluster room rectangles by size or position
//   - ocr_status: Report whether Tesseract is compiled in
//
// Tool arguments are validated before any work is done. A failed tool call
// returns JSON-RPC error -32000 whose data carries the error code
// (INVALID_ARGUMENT, OUT_OF_BOUNDS, UNAVAILABLE or INTERNAL) and detail.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process and
// shared by every tool.
//
// # Usage
//
//	srv, err := server.New(config.Default(), logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
