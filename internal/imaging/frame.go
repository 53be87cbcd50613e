package imaging

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// ErrNilImage is returned when a frame is built from a nil image.
var ErrNilImage = errors.New("nil image")

// Frame is one captured image exposing a color view for display and a
// grayscale view for analysis.
//
// The pipeline owns a Frame for the duration of one processing call. The
// color view is annotated in place and handed back as the display output;
// the grayscale view is only read.
type Frame struct {
	color *image.NRGBA
	gray  *image.Gray
}

// NewFrame builds a Frame from a decoded image. The color view is a private
// copy of img, so drawing on it never changes the caller's image, and the
// grayscale view is derived from that copy.
//
// A zero-sized image yields a Frame with zero-sized views. Detection rejects
// such a frame, but it can still be rendered and displayed.
func NewFrame(img image.Image) (*Frame, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	colorView := imaging.Clone(img)
	w, h := colorView.Bounds().Dx(), colorView.Bounds().Dy()
	return &Frame{
		color: colorView,
		gray:  redChannel(effect.Grayscale(colorView), w, h),
	}, nil
}

// NewFrameFromViews wraps views that a frame source has already produced,
// for example a camera driver that delivers luminance and color planes
// separately. Either view may be nil; the pipeline treats a nil color view
// as an invalid frame and a nil grayscale view as invalid detection input.
func NewFrameFromViews(colorView *image.NRGBA, grayView *image.Gray) *Frame {
	return &Frame{color: colorView, gray: grayView}
}

// Color returns the color view.
func (f *Frame) Color() *image.NRGBA {
	return f.color
}

// Gray returns the grayscale view.
func (f *Frame) Gray() *image.Gray {
	return f.gray
}

// Size returns the width and height of the color view.
func (f *Frame) Size() (int, int) {
	if f.color == nil {
		return 0, 0
	}
	b := f.color.Bounds()
	return b.Dx(), b.Dy()
}
