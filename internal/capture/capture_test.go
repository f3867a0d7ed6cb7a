package capture

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func TestSaveWritesDecodableWebP(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(60 * y), B: 200, A: 255})
		}
	}
	dir := filepath.Join(t.TempDir(), "captures")
	now := time.Date(2026, 10, 18, 14, 30, 5, 250_000_000, time.UTC)

	path, err := Save(dir, src, now)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "room-20261018-143005.250.webp" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 120 || g>>8 != 120 || b>>8 != 200 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestSaveIntoUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Save(file, image.NewNRGBA(image.Rect(0, 0, 1, 1)), time.Now())
	if err == nil || !strings.HasPrefix(err.Error(), "capture:") {
		t.Errorf("expected a capture error, got %v", err)
	}
}
