package detection

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// Detector runs one detection pass over a grayscale view.
//
// Implementations must not modify gray and must not return circles together
// with an error: a failed pass leaves the caller's cached result untouched.
type Detector interface {
	Detect(gray *image.Gray) (CircleSet, error)
}

// Factory builds a Detector for a set of parameters.
type Factory func(p Params) (Detector, error)

// DefaultBackend is the pure-Go Hough gradient backend.
const DefaultBackend = "hough"

var (
	backendsMu sync.RWMutex
	backends   = map[string]Factory{
		DefaultBackend: func(p Params) (Detector, error) {
			return NewHoughDetector(p)
		},
	}
)

// Register makes a detector backend available under name. Backends that need
// native libraries register themselves from build-tagged files.
func Register(name string, f Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = f
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a Detector from the named backend. An empty name selects
// DefaultBackend.
func New(backend string, p Params) (Detector, error) {
	if backend == "" {
		backend = DefaultBackend
	}
	backendsMu.RLock()
	f, ok := backends[backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown detector backend %q (available: %v)", backend, Backends())
	}
	return f(p)
}

// HoughDetector is the pure-Go Detector. It is not safe for concurrent use:
// LastStats reflects the most recent call to Detect.
type HoughDetector struct {
	params Params
	last   DetectStats
}

// NewHoughDetector validates p and returns a detector bound to it.
func NewHoughDetector(p Params) (*HoughDetector, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection params: %w", err)
	}
	return &HoughDetector{params: p}, nil
}

// Detect implements Detector using Detect with the bound parameters.
func (d *HoughDetector) Detect(gray *image.Gray) (CircleSet, error) {
	circles, stats, err := detect(gray, d.params)
	d.last = stats
	return circles, err
}

// Params returns the parameters the detector was built with.
func (d *HoughDetector) Params() Params {
	return d.params
}

// LastStats returns the work counters of the most recent pass.
func (d *HoughDetector) LastStats() DetectStats {
	return d.last
}
