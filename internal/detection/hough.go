package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/hough-overlay/internal/imaging"
)

// DetectStats describes the work done by one detection pass.
type DetectStats struct {
	// EdgePixels is the number of Canny edge pixels that voted.
	EdgePixels int `json:"edge_pixels"`

	// Candidates is the number of accumulator peaks above CenterThreshold.
	Candidates int `json:"candidates"`
}

// Detect finds circles in a grayscale view using the Hough gradient method.
//
// Parameters:
//   - gray: Grayscale view to analyze. It is never modified; smoothing runs
//     on a private working copy that is dropped when Detect returns.
//   - p: Detection parameters. See DefaultParams.
//
// Returns:
//   - CircleSet: Accepted circles, strongest accumulator peak first. The set
//     is empty (not nil) when nothing was found.
//   - error: ErrInvalidInput for a nil or zero-sized view, ErrTransformFailure
//     when the parameters or buffer layout prevent the transform from running.
//     No circles are returned alongside an error.
//
// # Algorithm (Hough Gradient)
//
//  1. Smoothing: Gaussian blur with a BlurKernelSize square kernel
//  2. Edges: Canny with thresholds EdgeThreshold/2 and EdgeThreshold
//  3. Center voting: every edge pixel votes along its gradient line, in both
//     directions, for each radius in [MinRadius, MaxRadius]
//  4. Peaks: local maxima above CenterThreshold, sorted by votes
//  5. Radius: for each peak not within MinCenterDistance of an accepted
//     center, pick the edge-distance band with the best support/radius ratio
//     and accept it when its support exceeds CenterThreshold
//
// A MaxRadius of 0 bounds the search by the larger image dimension.
func Detect(gray *image.Gray, p Params) (CircleSet, error) {
	circles, _, err := detect(gray, p)
	return circles, err
}

func detect(gray *image.Gray, p Params) (CircleSet, DetectStats, error) {
	var stats DetectStats

	if err := checkView(gray); err != nil {
		return nil, stats, err
	}
	if err := p.Validate(); err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrTransformFailure, err)
	}

	blurred, err := imaging.GaussianBlur(gray, p.BlurKernelSize, p.BlurSigma)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: blur: %v", ErrTransformFailure, err)
	}

	edges := imaging.Canny(blurred, math.Max(p.EdgeThreshold/2, 1), p.EdgeThreshold)
	return houghGradient(edges, p, &stats), stats, nil
}

// checkView validates the grayscale view before any work is done.
func checkView(gray *image.Gray) error {
	if gray == nil {
		return fmt.Errorf("%w: nil grayscale view", ErrInvalidInput)
	}
	b := gray.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: zero-sized grayscale view (%dx%d)", ErrInvalidInput, b.Dx(), b.Dy())
	}
	if gray.Stride < b.Dx() || len(gray.Pix) < (b.Dy()-1)*gray.Stride+b.Dx() {
		return fmt.Errorf("%w: unsupported buffer layout (stride %d, %d bytes for %dx%d)",
			ErrTransformFailure, gray.Stride, len(gray.Pix), b.Dx(), b.Dy())
	}
	return nil
}

type edgePoint struct {
	x, y float64
}

type peak struct {
	ax, ay int
	votes  int
}

// houghGradient runs center voting and radius estimation over an edge map.
func houghGradient(edges *imaging.EdgeMap, p Params, stats *DetectStats) CircleSet {
	circles := CircleSet{}

	width, height := edges.Width, edges.Height
	dp := p.AccumulatorResolution
	idp := 1 / dp

	minR := p.MinRadius
	maxR := p.MaxRadius
	if maxR <= 0 {
		maxR = math.Max(float64(width), float64(height))
	}
	if minR > maxR {
		return circles
	}

	// Accumulator with a one-cell border so peak checks never go out of range.
	accW := int(math.Ceil(float64(width)*idp)) + 2
	accH := int(math.Ceil(float64(height)*idp)) + 2
	acc := make([]int, accW*accH)

	points := make([]edgePoint, 0, 1024)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !edges.Edge[i] {
				continue
			}
			vx, vy := edges.Dx[i], edges.Dy[i]
			mag := math.Hypot(vx, vy)
			if mag == 0 {
				continue
			}
			points = append(points, edgePoint{x: float64(x), y: float64(y)})

			ux, uy := vx/mag, vy/mag
			for _, sign := range [2]float64{1, -1} {
				for r := minR; r <= maxR; r++ {
					ax := int(math.Floor((float64(x)+sign*r*ux)*idp)) + 1
					ay := int(math.Floor((float64(y)+sign*r*uy)*idp)) + 1
					if ax < 1 || ay < 1 || ax >= accW-1 || ay >= accH-1 {
						break
					}
					acc[ay*accW+ax]++
				}
			}
		}
	}
	stats.EdgePixels = len(points)
	if len(points) == 0 {
		return circles
	}

	threshold := p.CenterThreshold
	peaks := make([]peak, 0)
	for ay := 1; ay < accH-1; ay++ {
		for ax := 1; ax < accW-1; ax++ {
			base := ay*accW + ax
			v := acc[base]
			if float64(v) > threshold &&
				v > acc[base-1] && v >= acc[base+1] &&
				v > acc[base-accW] && v >= acc[base+accW] {
				peaks = append(peaks, peak{ax: ax, ay: ay, votes: v})
			}
		}
	}
	stats.Candidates = len(peaks)

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	minDist2 := p.MinCenterDistance * p.MinCenterDistance
	minR2 := minR * minR
	maxR2 := maxR * maxR
	dists := make([]float64, 0, len(points))

	for _, pk := range peaks {
		cx := (float64(pk.ax-1) + 0.5) * dp
		cy := (float64(pk.ay-1) + 0.5) * dp

		tooClose := false
		for _, c := range circles {
			dx, dy := c.X-cx, c.Y-cy
			if dx*dx+dy*dy < minDist2 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		dists = dists[:0]
		for _, pt := range points {
			dx, dy := cx-pt.x, cy-pt.y
			r2 := dx*dx + dy*dy
			if r2 >= minR2 && r2 <= maxR2 {
				dists = append(dists, math.Sqrt(r2))
			}
		}
		if len(dists) == 0 {
			continue
		}

		radius, support := estimateRadius(dists, dp)
		if float64(support) > threshold {
			circles = append(circles, Circle{X: cx, Y: cy, Radius: radius})
		}
	}

	return circles
}

// estimateRadius groups sorted edge distances into bands no wider than dr
// and returns the median radius and size of the band with the best
// support/radius ratio. Larger radii need proportionally more support, which
// keeps small noisy bands from winning.
func estimateRadius(dists []float64, dr float64) (float64, int) {
	sort.Float64s(dists)

	var rBest float64
	maxCount := 0
	consider := func(start, end int) {
		count := end - start
		rCur := dists[(start+end-1)/2]
		if float64(count)*rBest >= float64(maxCount)*rCur ||
			(rBest < 1e-7 && count >= maxCount) {
			rBest = rCur
			maxCount = count
		}
	}

	start := 0
	for i := 1; i < len(dists); i++ {
		if dists[i]-dists[start] > dr {
			consider(start, i)
			start = i
		}
	}
	consider(start, len(dists))

	return rBest, maxCount
}
