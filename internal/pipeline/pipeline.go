// Package pipeline runs the per-frame overlay loop: count the frame,
// periodically refresh the cached circle detections, and draw the cache onto
// the frame's color view.
package pipeline

import (
	"errors"
	"fmt"
	"image/draw"
	"time"

	"github.com/ironsheep/hough-overlay/internal/config"
	"github.com/ironsheep/hough-overlay/internal/detection"
	"github.com/ironsheep/hough-overlay/internal/imaging"
	"github.com/ironsheep/hough-overlay/internal/monitoring"
	"github.com/ironsheep/hough-overlay/internal/overlay"
)

// ErrInvalidFrame is returned for a nil frame or a frame without a color view.
var ErrInvalidFrame = errors.New("invalid frame")

// FrameResult describes what happened while processing one frame.
type FrameResult struct {
	// Frame is the counter value assigned to the frame, starting at 1.
	Frame uint64 `json:"frame"`

	// Recomputed is true when the frame triggered a detection pass.
	Recomputed bool `json:"recomputed"`

	// DetectionErr is the error of a failed detection pass. The cached
	// circles were kept.
	DetectionErr error `json:"-"`
}

// Stats are cumulative counters since construction or the last Reset.
type Stats struct {
	Frames        uint64        `json:"frames"`
	Recomputes    uint64        `json:"recomputes"`
	Failures      uint64        `json:"failures"`
	LastDetection time.Duration `json:"last_detection_ns"`
	Circles       int           `json:"circles"`
}

type statsReporter interface {
	LastStats() detection.DetectStats
}

// Pipeline holds the frame counter and the cached detections. It is not safe
// for concurrent use.
type Pipeline struct {
	detector detection.Detector
	period   int
	style    overlay.Style

	counter uint64
	circles detection.CircleSet
	stats   Stats
}

// New returns a pipeline that runs det every period frames and draws with
// style. The cache starts empty (nil) and the counter at zero.
func New(det detection.Detector, period int, style overlay.Style) *Pipeline {
	return &Pipeline{
		detector: det,
		period:   period,
		style:    style,
	}
}

// FromConfig validates cfg and builds a pipeline around the configured
// detector backend.
func FromConfig(cfg config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	det, err := detection.New(cfg.Backend, cfg.Detection)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, fmt.Errorf("invalid overlay style: %w", err)
	}
	return New(det, cfg.RecomputePeriod, style), nil
}

// ProcessFrame processes one frame and returns its annotated color view.
//
// Detection failures are not returned: they are logged, counted, and the
// previous detections stay cached and are drawn as usual.
func (p *Pipeline) ProcessFrame(f *imaging.Frame) (draw.Image, error) {
	out, _, err := p.Process(f)
	return out, err
}

// Process is ProcessFrame with a report of what the frame triggered.
func (p *Pipeline) Process(f *imaging.Frame) (draw.Image, FrameResult, error) {
	if f == nil || f.Color() == nil {
		return nil, FrameResult{}, ErrInvalidFrame
	}

	p.counter++
	p.stats.Frames++
	res := FrameResult{Frame: p.counter}

	if ShouldRecompute(p.counter, p.period) {
		res.Recomputed = true
		res.DetectionErr = p.recompute(f)
	}

	out := overlay.Render(f.Color(), p.circles, p.style)
	return out, res, nil
}

func (p *Pipeline) recompute(f *imaging.Frame) error {
	p.stats.Recomputes++

	start := time.Now()
	circles, err := p.detector.Detect(f.Gray())
	p.stats.LastDetection = time.Since(start)

	if err != nil {
		p.stats.Failures++
		monitoring.Logf("frame %d: detection failed, keeping %d cached circles: %v", p.counter, len(p.circles), err)
		return err
	}

	if circles == nil {
		circles = detection.CircleSet{}
	}
	p.circles = circles
	p.stats.Circles = len(circles)

	if monitoring.DebugEnabled() {
		if sr, ok := p.detector.(statsReporter); ok {
			ds := sr.LastStats()
			monitoring.Debugf("frame %d: %d circles in %v (edge pixels %d, candidates %d)",
				p.counter, len(circles), p.stats.LastDetection, ds.EdgePixels, ds.Candidates)
		} else {
			monitoring.Debugf("frame %d: %d circles in %v", p.counter, len(circles), p.stats.LastDetection)
		}
	}
	return nil
}

// Counter returns the number of frames processed since the last reset.
func (p *Pipeline) Counter() uint64 {
	return p.counter
}

// Circles returns a copy of the cached detections. It is nil until the first
// successful detection pass.
func (p *Pipeline) Circles() detection.CircleSet {
	return p.circles.Clone()
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Period returns the recompute period.
func (p *Pipeline) Period() int {
	return p.period
}

// Detector returns the detector the pipeline runs.
func (p *Pipeline) Detector() detection.Detector {
	return p.detector
}

// Reset clears the counter, the cached detections and the stats.
func (p *Pipeline) Reset() {
	p.counter = 0
	p.circles = nil
	p.stats = Stats{}
}
