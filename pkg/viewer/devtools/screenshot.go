package devtools

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"worldmap/pkg/viewer/mapview"
)

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// SaveScreenshot writes img to a timestamped PNG in dir and returns its path.
func SaveScreenshot(img image.Image, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	path, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("screenshot-%s.png", timestamp)))
	if err != nil {
		return "", err
	}
	if err := WritePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// Capture renders the view's current camera onto a fresh raster once all
// visible tiles and icons have loaded.
func Capture(ctx context.Context, m *mapview.MapView) (*image.RGBA, error) {
	w, h := m.Size()
	r := NewRaster(w, h)
	defer r.Close()
	if err := m.RenderSettled(ctx, r, time.Now()); err != nil {
		return nil, err
	}
	return r.Image(), nil
}
