// Package server exposes the overlay pipeline as an MCP (Model Context
// Protocol) tool server.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - overlay_process_frame: feed an image file to the pipeline as the next frame
//   - overlay_state: frame counter, cached circles, statistics
//   - overlay_reset: restart the pipeline from frame zero
//   - overlay_detect_circles: one-off detection that leaves the pipeline alone
//   - overlay_sample_color: color at a pixel
//
// The server owns exactly one pipeline and handles requests one at a time,
// so frames are numbered in request order.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed detection pass inside overlay_process_frame is not a tool error:
// the frame is still rendered with the previous circles and the failure is
// reported in the result's detection_error field.
//
// # Usage
//
//	srv, err := server.New(config.Default(), version)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
