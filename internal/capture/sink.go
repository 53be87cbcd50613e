package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// PNGSink writes annotated frames as numbered PNG files.
type PNGSink struct {
	dir   string
	count int
}

// NewPNGSink creates dir if needed.
func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &PNGSink{dir: dir}, nil
}

// Write saves img as frame_NNNNNN.png and returns the file path. Numbering
// starts at 1.
func (s *PNGSink) Write(img image.Image) (string, error) {
	s.count++
	path := filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", s.count))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Count returns the number of frames written.
func (s *PNGSink) Count() int {
	return s.count
}
