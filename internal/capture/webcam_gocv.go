//go:build gocv

package capture

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/hough-overlay/internal/imaging"
)

// WebcamAvailable reports whether this build can open cameras.
const WebcamAvailable = true

// WebcamSource reads frames from a video capture device.
type WebcamSource struct {
	capture *gocv.VideoCapture
	img     gocv.Mat
	gray    gocv.Mat
}

// OpenWebcam opens the capture device with the given index.
func OpenWebcam(device int) (Source, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open webcam %d: %w", device, err)
	}
	return &WebcamSource{
		capture: capture,
		img:     gocv.NewMat(),
		gray:    gocv.NewMat(),
	}, nil
}

// Next grabs one frame. The color view comes from the BGR capture and the
// grayscale view from the camera's own conversion.
func (s *WebcamSource) Next() (*imaging.Frame, error) {
	if ok := s.capture.Read(&s.img); !ok || s.img.Empty() {
		return nil, errors.New("cannot read from webcam")
	}

	colorImg, err := s.img.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}

	gocv.CvtColor(s.img, &s.gray, gocv.ColorBGRToGray)
	grayImg, err := s.gray.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert gray frame: %w", err)
	}
	gray, ok := grayImg.(*image.Gray)
	if !ok {
		return imaging.NewFrame(colorImg)
	}

	f, err := imaging.NewFrame(colorImg)
	if err != nil {
		return nil, err
	}
	return imaging.NewFrameFromViews(f.Color(), gray), nil
}

// Close releases the device and its buffers.
func (s *WebcamSource) Close() error {
	s.gray.Close()
	s.img.Close()
	return s.capture.Close()
}
