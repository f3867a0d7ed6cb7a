// Package capture writes screenshots of the room as lossless WebP.
package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FileName is the capture name for a moment in time.
func FileName(now time.Time) string {
	return fmt.Sprintf("room-%s.webp", now.Format("20060102-150405.000"))
}

// Save encodes img into dir and returns the written path.
func Save(dir string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	path := filepath.Join(dir, FileName(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("capture: WebP encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return path, nil
}

// Screen grabs the current framebuffer and saves it. Call it after
// EndDrawing so the frame is complete.
func Screen(dir string, now time.Time) (string, error) {
	shot := rl.LoadImageFromScreen()
	defer rl.UnloadImage(shot)
	return Save(dir, shot.ToImage(), now)
}
