package detection

import "errors"

var (
	// ErrInvalidInput is returned when the grayscale view is missing or has
	// zero width or height.
	ErrInvalidInput = errors.New("invalid detection input")

	// ErrTransformFailure is returned when the transform cannot run on an
	// otherwise present view: bad parameters or an unsupported buffer.
	ErrTransformFailure = errors.New("circle transform failed")
)
