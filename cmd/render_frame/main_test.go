package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("written file is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 255 {
		t.Errorf("pixel (1,1) red = %d, want 255", r>>8)
	}
}

func TestWritePNG_Errors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	missingDir := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := writePNG(missingDir, img); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestSteppedClockAndCanvas(t *testing.T) {
	c := &softwareCanvas{width: 64, height: 48, background: "#000000"}
	if c.Surface() != nil {
		t.Error("Surface() should be nil before Resize")
	}
	rect, ok := c.ContainerRect()
	if !ok || rect.W != 64 || rect.H != 48 {
		t.Fatalf("ContainerRect() = %+v, %v", rect, ok)
	}
	c.Resize(64, 48)
	first := c.surface
	c.Resize(64, 48)
	if c.surface != first {
		t.Error("same-size Resize should keep the surface")
	}

	clock := &steppedClock{}
	clock.now += 16
	if clock.Now() != 16 {
		t.Errorf("Now() = %v, want 16", clock.Now())
	}
}
