// Package detection finds circles in grayscale frames.
//
// A detection pass smooths the grayscale view with a Gaussian kernel, runs
// Canny edge detection on the smoothed copy, and applies the Hough gradient
// transform: every edge pixel votes for centers along its gradient direction,
// accumulator peaks become center candidates, and each candidate's radius is
// estimated from the distances of the edge pixels around it.
//
// # Results
//
// A pass returns a CircleSet. Circles keep floating-point centers and radii
// and are listed in the order the transform accepted them (strongest
// accumulator peak first). Callers must not rely on any other ordering.
// A pass that finds nothing returns an empty, non-nil CircleSet.
//
// # Errors
//
// Failures wrap one of two sentinels, to be tested with errors.Is:
//   - ErrInvalidInput: the grayscale view is nil or zero-sized
//   - ErrTransformFailure: the parameters or the buffer layout prevent the
//     transform from running
//
// A failed pass never returns circles.
//
// # Backends
//
// The "hough" backend is pure Go and always available. Building with the
// gocv tag adds an "opencv" backend that calls OpenCV's GaussianBlur and
// HoughCircles through gocv. Use New to select a backend by name.
//
// # Performance
//
// Voting cost is proportional to edge pixels × radius range. With MaxRadius
// 0 the range runs to the larger image side, so large frames are expensive;
// the overlay pipeline amortizes this by detecting only every Nth frame.
package detection
