package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// writeTestImage writes a solid color PNG named name into dir.
func writeTestImage(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

func TestDirSource_SortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "b.png", 4, 4, color.NRGBA{20, 20, 20, 255})
	writeTestImage(t, dir, "a.png", 4, 4, color.NRGBA{10, 10, 10, 255})
	writeTestImage(t, dir, "c.png", 4, 4, color.NRGBA{30, 30, 30, 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewDirSource(dir, false)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	defer src.Close()

	if src.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", src.Len())
	}

	for _, want := range []uint8{10, 20, 30} {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got := f.Gray().GrayAt(0, 0).Y; got != want {
			t.Errorf("frame gray value: got %d, want %d", got, want)
		}
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("after last frame: got %v, want io.EOF", err)
	}
}

func TestDirSource_Loop(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "01.png", 4, 4, color.NRGBA{10, 10, 10, 255})
	writeTestImage(t, dir, "02.png", 4, 4, color.NRGBA{20, 20, 20, 255})

	src, err := NewDirSource(dir, true)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	defer src.Close()

	want := []uint8{10, 20, 10, 20, 10}
	for i, w := range want {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if got := f.Gray().GrayAt(0, 0).Y; got != w {
			t.Errorf("frame %d: got %d, want %d", i, got, w)
		}
	}
}

func TestDirSource_FramesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "only.png", 4, 4, color.NRGBA{10, 10, 10, 255})

	src, err := NewDirSource(dir, true)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	defer src.Close()

	first, _ := src.Next()
	first.Color().SetNRGBA(0, 0, color.NRGBA{0, 255, 0, 255})

	second, err := src.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got := second.Color().NRGBAAt(0, 0); got.G != 10 {
		t.Errorf("annotation leaked into next frame: %v", got)
	}
}

func TestDirSource_Errors(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("expected error for missing directory")
	}

	if _, err := NewDirSource(t.TempDir(), false); !errors.Is(err, ErrNoFrames) {
		t.Errorf("empty directory: got %v, want ErrNoFrames", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := NewDirSource(dir, false)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	if _, err := src.Next(); err == nil {
		t.Error("expected decode error")
	}

	src.Close()
	if _, err := src.Next(); !errors.Is(err, ErrClosed) {
		t.Errorf("after Close: got %v, want ErrClosed", err)
	}
}

func TestStillSource(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), "still.png", 8, 6, color.NRGBA{50, 50, 50, 255})

	src, err := NewStillSource(path, 3)
	if err != nil {
		t.Fatalf("NewStillSource failed: %v", err)
	}
	defer src.Close()

	for i := 0; i < 3; i++ {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if w, h := f.Size(); w != 8 || h != 6 {
			t.Errorf("frame size: got %dx%d, want 8x6", w, h)
		}
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("after count frames: got %v, want io.EOF", err)
	}
}

func TestStillSource_Unbounded(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), "still.png", 2, 2, color.White)

	src, err := NewStillSource(path, 0)
	if err != nil {
		t.Fatalf("NewStillSource failed: %v", err)
	}
	defer src.Close()

	for i := 0; i < 50; i++ {
		if _, err := src.Next(); err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
	}
}

func TestStillSource_MissingFile(t *testing.T) {
	if _, err := NewStillSource(filepath.Join(t.TempDir(), "missing.png"), 1); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "a.png", 2, 2, color.White)

	src, err := Open(dir, 0, false)
	if err != nil {
		t.Fatalf("Open dir failed: %v", err)
	}
	if _, ok := src.(*DirSource); !ok {
		t.Errorf("Open dir: got %T, want *DirSource", src)
	}
	src.Close()

	src, err = Open(path, 2, false)
	if err != nil {
		t.Fatalf("Open file failed: %v", err)
	}
	if _, ok := src.(*StillSource); !ok {
		t.Errorf("Open file: got %T, want *StillSource", src)
	}
	src.Close()

	if _, err := Open(filepath.Join(dir, "missing"), 1, false); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	sink, err := NewPNGSink(dir)
	if err != nil {
		t.Fatalf("NewPNGSink failed: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	img.SetNRGBA(1, 1, color.NRGBA{0, 255, 0, 255})

	var paths []string
	for i := 0; i < 2; i++ {
		p, err := sink.Write(img)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		paths = append(paths, p)
	}

	wantNames := []string{"frame_000001.png", "frame_000002.png"}
	for i, p := range paths {
		if filepath.Base(p) != wantNames[i] {
			t.Errorf("file %d: got %s, want %s", i, filepath.Base(p), wantNames[i])
		}
	}
	if sink.Count() != 2 {
		t.Errorf("Count: got %d, want 2", sink.Count())
	}

	got, err := imaging.Open(paths[0])
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	if b := got.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("output size: got %v", b)
	}
	if r, g, b, _ := got.At(1, 1).RGBA(); r != 0 || g != 0xffff || b != 0 {
		t.Errorf("output pixel (1,1): got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestOpenWebcam_Availability(t *testing.T) {
	if WebcamAvailable {
		t.Skip("webcam build; needs a device")
	}
	if _, err := OpenWebcam(0); err == nil {
		t.Error("expected error without gocv support")
	}
}
