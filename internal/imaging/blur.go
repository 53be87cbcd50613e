package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"gonum.org/v1/gonum/floats"
)

// GaussianKernel returns a normalized size×size Gaussian kernel.
//
// The kernel is the outer product of a 1-D Gaussian with the given sigma.
// A sigma of 0 derives sigma from the kernel size using the same rule as
// OpenCV: sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
//
// Returns an error if size is not a positive odd number or sigma is negative.
func GaussianKernel(size int, sigma float64) (*convolution.Kernel, error) {
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("kernel size must be a positive odd number, got %d", size)
	}
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("sigma must be >= 0, got %v", sigma)
	}
	if sigma == 0 {
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}

	half := size / 2
	oneD := make([]float64, size)
	for i := range oneD {
		d := float64(i - half)
		oneD[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(oneD), oneD)

	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Matrix[y*k.Width+x] = oneD[y] * oneD[x]
		}
	}
	return k, nil
}

// GaussianBlur smooths a grayscale image with a size×size Gaussian kernel.
//
// The source is never modified; the result is a new zero-origin image of the
// same dimensions. Border pixels use clamped (replicated) edge values.
func GaussianBlur(src *image.Gray, size int, sigma float64) (*image.Gray, error) {
	k, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}

	work := CloneGray(src)
	if size == 1 {
		return work, nil
	}

	blurred := convolution.Convolve(work, k, &convolution.Options{Wrap: false})

	return redChannel(blurred, work.Bounds().Dx(), work.Bounds().Dy()), nil
}

// redChannel copies the R channel of a gray-valued RGBA image into a
// zero-origin Gray. bild's filters return RGBA even for gray input.
func redChannel(src *image.RGBA, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	if len(src.Pix) == 0 {
		return dst
	}
	for y := 0; y < height; y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

// CloneGray returns a zero-origin copy of src.
func CloneGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return dst
}
