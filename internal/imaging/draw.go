package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// DrawCircle draws an unfilled circle outline centered at (cx, cy).
//
// The outline is rasterized with the midpoint circle algorithm. A thickness
// greater than 1 draws concentric rings spread around radius; a thickness
// below 1 is treated as 1. A radius of 0 plots the single center pixel and a
// negative radius draws nothing.
//
// Pixels outside dst.Bounds() are skipped, so circles that are partly or
// completely off-image are clipped silently.
func DrawCircle(dst draw.Image, cx, cy, radius int, c color.Color, thickness int) {
	if radius < 0 {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	bounds := dst.Bounds()
	inner := radius - (thickness-1)/2
	outer := radius + thickness/2
	for r := inner; r <= outer; r++ {
		if r < 0 {
			continue
		}
		drawRing(dst, bounds, cx, cy, r, c)
	}
}

// drawRing plots one 1-pixel ring using the midpoint algorithm.
func drawRing(dst draw.Image, bounds image.Rectangle, cx, cy, radius int, c color.Color) {
	set := func(px, py int) {
		if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
			dst.Set(px, py, c)
		}
	}

	x := radius
	y := 0
	err := 0

	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		if err <= 0 {
			y += 1
			err += 2*y + 1
		}
		if err > 0 {
			x -= 1
			err -= 2*x + 1
		}
	}
}
