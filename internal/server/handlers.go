package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/hough-overlay/internal/detection"
	"github.com/ironsheep/hough-overlay/internal/imaging"
	"github.com/ironsheep/hough-overlay/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "overlay_process_frame").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "overlay_process_frame":
		return s.handleProcessFrame(args)
	case "overlay_detect_circles":
		return s.handleDetectCircles(args)
	case "overlay_state":
		return s.handleState()
	case "overlay_reset":
		return s.handleReset()
	case "overlay_sample_color":
		return s.handleSampleColor(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// === Pipeline Handlers ===

type processFrameArgs struct {
	Path         string `json:"path"`
	IncludeImage bool   `json:"include_image"`
}

// ProcessFrameResult is returned by overlay_process_frame.
type ProcessFrameResult struct {
	Frame          uint64                `json:"frame"`
	Recomputed     bool                  `json:"recomputed"`
	DetectionError string                `json:"detection_error,omitempty"`
	Circles        detection.CircleSet   `json:"circles"`
	Image          *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleProcessFrame(args json.RawMessage) (interface{}, error) {
	var a processFrameArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	f, err := s.cache.LoadFrame(a.Path)
	if err != nil {
		return nil, err
	}

	out, res, err := s.pipe.Process(f)
	if err != nil {
		return nil, err
	}

	result := &ProcessFrameResult{
		Frame:      res.Frame,
		Recomputed: res.Recomputed,
		Circles:    s.pipe.Circles(),
	}
	if res.DetectionErr != nil {
		result.DetectionError = res.DetectionErr.Error()
	}
	if a.IncludeImage {
		enc, err := imaging.EncodePNG(out)
		if err != nil {
			return nil, err
		}
		result.Image = enc
	}
	return result, nil
}

// DetectResult is returned by overlay_detect_circles.
type DetectResult struct {
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
	Count   int                 `json:"count"`
	Circles detection.CircleSet `json:"circles"`
}

// handleDetectCircles runs a one-off pass with a detector of its own, so the
// pipeline's cache and counters are left alone.
func (s *Server) handleDetectCircles(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	f, err := s.cache.LoadFrame(a.Path)
	if err != nil {
		return nil, err
	}

	det, err := detection.New(s.cfg.Backend, s.cfg.Detection)
	if err != nil {
		return nil, err
	}
	circles, err := det.Detect(f.Gray())
	if err != nil {
		return nil, err
	}

	w, h := f.Size()
	return &DetectResult{
		Width:   w,
		Height:  h,
		Count:   len(circles),
		Circles: circles,
	}, nil
}

// StateResult is returned by overlay_state.
type StateResult struct {
	Frame   uint64              `json:"frame"`
	Period  int                 `json:"recompute_period"`
	Backend string              `json:"backend"`
	Circles detection.CircleSet `json:"circles"`
	Stats   pipeline.Stats      `json:"stats"`
}

func (s *Server) handleState() (interface{}, error) {
	backend := s.cfg.Backend
	if backend == "" {
		backend = detection.DefaultBackend
	}
	return &StateResult{
		Frame:   s.pipe.Counter(),
		Period:  s.pipe.Period(),
		Backend: backend,
		Circles: s.pipe.Circles(),
		Stats:   s.pipe.Stats(),
	}, nil
}

func (s *Server) handleReset() (interface{}, error) {
	s.pipe.Reset()
	s.cache.Clear()
	return map[string]interface{}{"reset": true}, nil
}

// === Color Handlers ===

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
