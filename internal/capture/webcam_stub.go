//go:build !gocv

package capture

import "errors"

// WebcamAvailable reports whether this build can open cameras.
const WebcamAvailable = false

// OpenWebcam always fails in builds without the gocv tag.
func OpenWebcam(device int) (Source, error) {
	return nil, errors.New("webcam capture requires a build with -tags gocv")
}
