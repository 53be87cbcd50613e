// Package capture provides frame sources for the overlay pipeline and a sink
// for the annotated output.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/hough-overlay/internal/imaging"
)

// Source delivers frames one at a time. Next returns io.EOF once the source
// is exhausted. Every returned Frame is a fresh copy owned by the caller.
type Source interface {
	Next() (*imaging.Frame, error)
	Close() error
}

// ErrNoFrames is returned when a directory holds no supported images.
var ErrNoFrames = errors.New("no image files found")

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("source closed")

var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Open picks a source for input: a directory becomes a DirSource, a single
// file becomes a StillSource repeated frames times.
func Open(input string, frames int, loop bool) (Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if info.IsDir() {
		return NewDirSource(input, loop)
	}
	return NewStillSource(input, frames)
}

// DirSource plays the images of a directory in file name order.
type DirSource struct {
	paths  []string
	loop   bool
	next   int
	cache  *imaging.ImageCache
	closed bool
}

// NewDirSource lists the PNG, JPEG and GIF files in dir. With loop set the
// sequence restarts after the last file and decoded images are kept in
// memory for the next pass.
func NewDirSource(dir string, loop bool) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}
	sort.Strings(paths)

	return &DirSource{
		paths: paths,
		loop:  loop,
		cache: imaging.NewImageCache(),
	}, nil
}

// Len returns the number of files in one pass.
func (s *DirSource) Len() int {
	return len(s.paths)
}

// Next decodes the next file.
func (s *DirSource) Next() (*imaging.Frame, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.next >= len(s.paths) {
		if !s.loop {
			return nil, io.EOF
		}
		s.next = 0
	}

	path := s.paths[s.next]
	s.next++

	f, err := s.cache.LoadFrame(path)
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", filepath.Base(path), err)
	}
	if !s.loop {
		s.cache.Evict(path)
	}
	return f, nil
}

// Close releases the cached images.
func (s *DirSource) Close() error {
	s.closed = true
	s.cache.Clear()
	return nil
}

// StillSource repeats a single image. It stands in for a static camera.
type StillSource struct {
	path      string
	remaining int
	cache     *imaging.ImageCache
	closed    bool
}

// NewStillSource decodes path once and serves it count times. A count of 0
// or less repeats forever.
func NewStillSource(path string, count int) (*StillSource, error) {
	cache := imaging.NewImageCache()
	if _, err := cache.Load(path); err != nil {
		return nil, err
	}
	remaining := count
	if count <= 0 {
		remaining = -1
	}
	return &StillSource{path: path, remaining: remaining, cache: cache}, nil
}

// Next returns a fresh copy of the still.
func (s *StillSource) Next() (*imaging.Frame, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.remaining == 0 {
		return nil, io.EOF
	}
	if s.remaining > 0 {
		s.remaining--
	}
	return s.cache.LoadFrame(s.path)
}

// Close releases the decoded still.
func (s *StillSource) Close() error {
	s.closed = true
	s.cache.Clear()
	return nil
}
