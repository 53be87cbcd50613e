package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/hough-overlay/internal/capture"
	"github.com/ironsheep/hough-overlay/internal/pipeline"
)

// processFrames pulls frames from src through p until the source is
// exhausted or ctx is cancelled, writing each annotated frame to sink when
// sink is non-nil. Cancellation is checked between frames. It returns the
// number of frames processed.
func processFrames(ctx context.Context, src capture.Source, p *pipeline.Pipeline, sink *capture.PNGSink) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, nil
		default:
		}

		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("failed to read frame %d: %w", n+1, err)
		}

		out, err := p.ProcessFrame(f)
		if err != nil {
			return n, fmt.Errorf("frame %d: %w", n+1, err)
		}
		n++

		if sink != nil {
			if _, err := sink.Write(out); err != nil {
				return n, err
			}
		}
	}
}
