package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
	if result.Alpha != 255 {
		t.Errorf("Alpha: got %d, want 255", result.Alpha)
	}
}

func TestSampleColor_HSL(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want HSLColor
	}{
		{"red", color.RGBA{255, 0, 0, 255}, HSLColor{H: 0, S: 100, L: 50}},
		{"green", color.RGBA{0, 255, 0, 255}, HSLColor{H: 120, S: 100, L: 50}},
		{"blue", color.RGBA{0, 0, 255, 255}, HSLColor{H: 240, S: 100, L: 50}},
		{"white", color.RGBA{255, 255, 255, 255}, HSLColor{H: 0, S: 0, L: 100}},
		{"black", color.RGBA{0, 0, 0, 255}, HSLColor{H: 0, S: 0, L: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(createInMemoryImage(4, 4, tt.c), 1, 1)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.HSL != tt.want {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.want)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := SampleColor(img, p[0], p[1]); err == nil {
			t.Errorf("SampleColor(%d,%d) should fail", p[0], p[1])
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"0000FF", color.RGBA{0, 0, 255, 255}, false},
		{"#0F0", color.RGBA{0, 255, 0, 255}, false},
		{" #FFFFFF ", color.RGBA{255, 255, 255, 255}, false},
		{"", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"#00FF0080", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
