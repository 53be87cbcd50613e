// Package overlay draws cached circle detections onto display frames.
package overlay

import (
	"fmt"
	"image/color"
	"image/draw"
	"math"

	"github.com/ironsheep/hough-overlay/internal/detection"
	"github.com/ironsheep/hough-overlay/internal/imaging"
)

// Style controls how circles are drawn.
type Style struct {
	// Outline is the color of the detected circle's outline.
	Outline color.Color

	// Center is the color of the small marker drawn at the circle center.
	Center color.Color

	// Thickness is the stroke width in pixels for both shapes.
	Thickness int

	// CenterRadius is the radius of the center marker in pixels.
	CenterRadius int
}

// DefaultStyle returns a green outline with a red radius-3 center marker,
// both 1 pixel wide.
func DefaultStyle() Style {
	return Style{
		Outline:      color.RGBA{R: 0, G: 255, B: 0, A: 255},
		Center:       color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Thickness:    1,
		CenterRadius: 3,
	}
}

// ParseStyle builds a Style from hex colors such as "#00FF00".
func ParseStyle(outlineHex, centerHex string, thickness, centerRadius int) (Style, error) {
	outline, err := imaging.ParseHexColor(outlineHex)
	if err != nil {
		return Style{}, fmt.Errorf("outline color: %w", err)
	}
	center, err := imaging.ParseHexColor(centerHex)
	if err != nil {
		return Style{}, fmt.Errorf("center color: %w", err)
	}
	if thickness < 1 {
		return Style{}, fmt.Errorf("thickness must be >= 1, got %d", thickness)
	}
	if centerRadius < 0 {
		return Style{}, fmt.Errorf("center radius must be >= 0, got %d", centerRadius)
	}
	return Style{
		Outline:      outline,
		Center:       center,
		Thickness:    thickness,
		CenterRadius: centerRadius,
	}, nil
}

// Render draws every circle of circles onto dst, in set order, and returns
// dst.
//
// Centers and radii are rounded to the nearest whole pixel. Each circle gets
// an unfilled outline in style.Outline followed by an unfilled
// style.CenterRadius marker in style.Center at the same center. A nil or
// empty set leaves dst untouched. Shapes extending past the frame edge are
// clipped; Render never fails.
func Render(dst draw.Image, circles detection.CircleSet, style Style) draw.Image {
	for _, c := range circles {
		cx := int(math.Round(c.X))
		cy := int(math.Round(c.Y))
		r := int(math.Round(c.Radius))

		imaging.DrawCircle(dst, cx, cy, r, style.Outline, style.Thickness)
		imaging.DrawCircle(dst, cx, cy, style.CenterRadius, style.Center, style.Thickness)
	}
	return dst
}
