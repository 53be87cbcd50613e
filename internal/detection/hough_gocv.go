//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/hough-overlay/internal/imaging"
)

// OpenCVBackend is the registry name of the OpenCV detector.
const OpenCVBackend = "opencv"

func init() {
	Register(OpenCVBackend, func(p Params) (Detector, error) {
		return NewOpenCVDetector(p)
	})
}

// OpenCVDetector runs GaussianBlur and HoughCircles from OpenCV through gocv.
// It produces the same CircleSet shape as HoughDetector; exact circles may
// differ slightly because OpenCV's Canny and voting use fixed-point steps.
type OpenCVDetector struct {
	params Params
}

// NewOpenCVDetector validates p and returns a detector bound to it.
func NewOpenCVDetector(p Params) (*OpenCVDetector, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection params: %w", err)
	}
	return &OpenCVDetector{params: p}, nil
}

// Detect implements Detector. Every Mat it allocates is closed before it
// returns, on success and on failure.
func (d *OpenCVDetector) Detect(gray *image.Gray) (CircleSet, error) {
	if err := checkView(gray); err != nil {
		return nil, err
	}
	p := d.params

	src, err := gocv.ImageGrayToMatGray(imaging.CloneGray(gray))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransformFailure, err)
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := p.BlurKernelSize
	gocv.GaussianBlur(src, &blurred, image.Pt(k, k), p.BlurSigma, p.BlurSigma, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient,
		p.AccumulatorResolution, p.MinCenterDistance,
		p.EdgeThreshold, p.CenterThreshold,
		int(p.MinRadius), int(p.MaxRadius))

	if circles.Empty() || circles.Cols() == 0 {
		return CircleSet{}, nil
	}

	out := make(CircleSet, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		out[i] = Circle{
			X:      float64(circles.GetFloatAt(0, i*3)),
			Y:      float64(circles.GetFloatAt(0, i*3+1)),
			Radius: float64(circles.GetFloatAt(0, i*3+2)),
		}
	}
	return out, nil
}
