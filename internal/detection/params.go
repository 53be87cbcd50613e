package detection

import (
	"errors"
	"fmt"
	"math"
)

// Params bundles the tunables of a detection pass: the Gaussian pre-blur and
// the Hough gradient transform.
type Params struct {
	// BlurKernelSize is the side of the square Gaussian kernel. Odd, >= 1.
	BlurKernelSize int `json:"blur_kernel_size"`

	// BlurSigma is the Gaussian sigma used for both axes. 0 derives it from
	// the kernel size.
	BlurSigma float64 `json:"blur_sigma"`

	// AccumulatorResolution is the inverse ratio of accumulator resolution to
	// image resolution (dp). 1 means the accumulator matches the image, 2
	// means half the width and height.
	AccumulatorResolution float64 `json:"accumulator_resolution"`

	// MinCenterDistance is the minimum distance in pixels between the centers
	// of two reported circles.
	MinCenterDistance float64 `json:"min_center_distance"`

	// EdgeThreshold (param1) is the Canny high threshold; the low threshold
	// is half of it.
	EdgeThreshold float64 `json:"edge_threshold"`

	// CenterThreshold (param2) is the vote count a center candidate must
	// exceed, and the edge support a radius must exceed, to be accepted.
	CenterThreshold float64 `json:"center_threshold"`

	// MinRadius is the smallest radius searched, in pixels.
	MinRadius float64 `json:"min_radius"`

	// MaxRadius is the largest radius searched, in pixels. 0 means no
	// explicit bound: the transform searches up to the larger image side.
	MaxRadius float64 `json:"max_radius"`
}

// DefaultParams returns the stock detection parameters: 9x9 blur with sigma
// 2, dp 1, minimum center distance 10, thresholds 100/30 and an unbounded
// radius range.
func DefaultParams() Params {
	return Params{
		BlurKernelSize:        9,
		BlurSigma:             2,
		AccumulatorResolution: 1,
		MinCenterDistance:     10,
		EdgeThreshold:         100,
		CenterThreshold:       30,
		MinRadius:             0,
		MaxRadius:             0,
	}
}

// Validate reports every parameter that is out of range.
func (p Params) Validate() error {
	var errs []error
	if p.BlurKernelSize < 1 || p.BlurKernelSize%2 == 0 {
		errs = append(errs, fmt.Errorf("blur_kernel_size must be an odd number >= 1, got %d", p.BlurKernelSize))
	}
	if p.BlurSigma < 0 || math.IsNaN(p.BlurSigma) {
		errs = append(errs, fmt.Errorf("blur_sigma must be >= 0, got %v", p.BlurSigma))
	}
	if !(p.AccumulatorResolution > 0) {
		errs = append(errs, fmt.Errorf("accumulator_resolution must be > 0, got %v", p.AccumulatorResolution))
	}
	if p.MinCenterDistance < 0 || math.IsNaN(p.MinCenterDistance) {
		errs = append(errs, fmt.Errorf("min_center_distance must be >= 0, got %v", p.MinCenterDistance))
	}
	if math.IsNaN(p.EdgeThreshold) || math.IsNaN(p.CenterThreshold) {
		errs = append(errs, errors.New("thresholds must be numbers"))
	}
	if p.MinRadius < 0 || math.IsNaN(p.MinRadius) {
		errs = append(errs, fmt.Errorf("min_radius must be >= 0, got %v", p.MinRadius))
	}
	if p.MaxRadius < 0 || math.IsNaN(p.MaxRadius) {
		errs = append(errs, fmt.Errorf("max_radius must be >= 0, got %v", p.MaxRadius))
	}
	if p.MaxRadius > 0 && p.MaxRadius < p.MinRadius {
		errs = append(errs, fmt.Errorf("max_radius %v is below min_radius %v", p.MaxRadius, p.MinRadius))
	}
	return errors.Join(errs...)
}
