// Package imaging provides the image primitives used by the overlay pipeline.
//
// It owns the Frame type (a color view for display plus a grayscale view for
// analysis), the image loading cache, the Gaussian smoothing and Canny edge
// stages that feed circle detection, the circle raster primitive used by the
// renderer, and small helpers for color parsing, sampling and PNG encoding.
// All operations work with standard Go image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Views built by NewFrame always start at the origin
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Frames are not: a Frame is
// owned by a single pipeline call and its color view is drawn on in place.
// GaussianBlur and Canny never modify their input and allocate their own
// working buffers.
//
// # Clipping
//
// DrawCircle silently skips pixels that fall outside the destination bounds,
// so shapes that are partly or entirely off-frame never cause an error.
package imaging
