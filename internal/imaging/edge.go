package imaging

import (
	"image"
	"math"
)

// EdgeMap is the output of Canny: a binary edge mask plus the Sobel
// gradients that produced it.
//
// All slices are row-major with len == Width*Height. Dx and Dy hold the raw
// 3x3 Sobel responses on the 0-255 intensity scale; the Hough gradient
// transform walks along them from every edge pixel.
type EdgeMap struct {
	Width  int
	Height int
	Edge   []bool
	Dx     []float64
	Dy     []float64
}

// At reports whether (x, y) is an edge pixel. Out-of-range coordinates are
// never edges.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Edge[y*m.Width+x]
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, e := range m.Edge {
		if e {
			n++
		}
	}
	return n
}

// Canny performs Canny edge detection on an already smoothed grayscale image.
//
// Parameters:
//   - src: Grayscale input. It is read only.
//   - low: Hysteresis low threshold on the L1 gradient magnitude (0-255 scale
//     per Sobel tap, so magnitudes can exceed 255).
//   - high: Hysteresis high threshold. Pixels at or above it are strong edges.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y,
//     magnitude = |Gx| + |Gy|, direction = atan2(Gy, Gx)
//
//  2. Non-maximum suppression: keep only local maxima along the gradient
//     direction, thinning edges to 1-pixel width
//
//  3. Hysteresis: strong pixels seed an 8-connected flood fill that keeps any
//     weak pixel (between low and high) reachable from a strong one
//
// Border pixels are never edges. The caller is expected to smooth the input
// first; Canny applies no blur of its own.
func Canny(src *image.Gray, low, high float64) *EdgeMap {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	n := width * height

	m := &EdgeMap{
		Width:  width,
		Height: height,
		Edge:   make([]bool, n),
		Dx:     make([]float64, n),
		Dy:     make([]float64, n),
	}
	if width < 3 || height < 3 {
		return m
	}

	pix := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(src.Pix[src.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, n)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					p := pix(x+kx, y+ky)
					gx += p * sobelX[ky+1][kx+1]
					gy += p * sobelY[ky+1][kx+1]
				}
			}
			i := y*width + x
			m.Dx[i] = gx
			m.Dy[i] = gy
			magnitude[i] = math.Abs(gx) + math.Abs(gy)
		}
	}

	// Non-maximum suppression
	const (
		strong = 2
		weak   = 1
	)
	class := make([]uint8, n)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag < low {
				continue
			}

			angle := math.Atan2(m.Dy[i], m.Dx[i])

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			} else {
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			}

			// Ties break toward the earlier neighbor so plateaus stay one pixel wide.
			if mag > n1 && mag >= n2 {
				if mag >= high {
					class[i] = strong
				} else {
					class[i] = weak
				}
			}
		}
	}

	// Hysteresis: flood from strong pixels through weak ones.
	stack := make([]int, 0, 1024)
	for i, c := range class {
		if c == strong {
			m.Edge[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				j := ny*width + nx
				if class[j] == weak && !m.Edge[j] {
					m.Edge[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	return m
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
