package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCanny_UniformImage(t *testing.T) {
	m := Canny(newGray(50, 50, 128), 50, 100)

	if m.Width != 50 || m.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", m.Width, m.Height)
	}
	if n := m.Count(); n != 0 {
		t.Errorf("uniform image should have no edges, got %d", n)
	}
}

func TestCanny_StrongEdge(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			img.SetGray(x, y, color.Gray{255})
		}
	}

	m := Canny(img, 50, 100)

	// The vertical step should be found in the middle rows.
	edgeFound := false
	for x := 48; x <= 52; x++ {
		if m.At(x, 50) {
			edgeFound = true
			break
		}
	}
	if !edgeFound {
		t.Error("strong vertical edge was not detected")
	}

	// Gradient points from dark to bright: positive X.
	if m.Dx[50*100+50] <= 0 {
		t.Errorf("Dx at edge: got %v, want > 0", m.Dx[50*100+50])
	}

	// Nothing far from the step.
	if m.At(10, 50) || m.At(90, 50) {
		t.Error("edges reported away from the step")
	}
}

func TestCanny_HighThresholdSuppresses(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{20})
		}
	}

	// Step of 20 gives an L1 Sobel magnitude of 80.
	if n := Canny(img, 40, 60).Count(); n == 0 {
		t.Error("expected edges with low thresholds")
	}
	if n := Canny(img, 100, 200).Count(); n != 0 {
		t.Errorf("expected no edges with high thresholds, got %d", n)
	}
}

func TestCanny_SmallImage(t *testing.T) {
	m := Canny(newGray(2, 2, 0), 10, 20)
	if len(m.Edge) != 4 || m.Count() != 0 {
		t.Errorf("tiny image: got %d cells, %d edges", len(m.Edge), m.Count())
	}
}

func TestEdgeMap_AtOutOfRange(t *testing.T) {
	m := Canny(newGray(5, 5, 0), 10, 20)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if m.At(p[0], p[1]) {
			t.Errorf("At(%d,%d) should be false", p[0], p[1])
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
