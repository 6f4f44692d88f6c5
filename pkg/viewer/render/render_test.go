package render

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
	"time"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/camera"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/tiles"
)

// gatedFetcher returns a 1x1 image for every path once release is closed,
// and an error for paths listed in fail.
type gatedFetcher struct {
	release chan struct{}
	fail    map[string]bool
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{}), fail: map[string]bool{}}
}

func (f *gatedFetcher) Fetch(ctx context.Context, p string) (image.Image, error) {
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.fail[p] {
		return nil, errors.New("missing")
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func testView(cfg *config.Config, zoom int, off geometry.Vec, w, h int) camera.View {
	cam := camera.New(cfg)
	res := cfg.ResolutionFor(zoom)
	return camera.View{
		Offset:       off,
		ZoomFactor:   cam.CameraZoom(zoom, res),
		Resolution:   res,
		ZoomLevel:    zoom,
		Width:        w,
		Height:       h,
		BaseTileSize: cfg.BaseTileSize,
	}
}

func waitIdle(t *testing.T, c *tiles.Cache) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.WaitIdle(ctx); err != nil {
		t.Fatalf("WaitIdle error = %v", err)
	}
}

func TestVisibleRange_800x600AtZoomOne(t *testing.T) {
	cfg := config.Default()
	v := testView(cfg, 1, geometry.V(0, 0), 800, 600)

	size := v.TileSize()
	if want := 2048 * 2 * math.Pow(1.5, -3) / 2; math.Abs(size-want) > 1e-9 {
		t.Fatalf("TileSize() = %v, want %v", size, want)
	}
	got := VisibleRange(v)
	want := TileRange{MinCol: 0, MinRow: 0, MaxCol: 1, MaxRow: 0}
	if got != want {
		t.Errorf("VisibleRange = %+v, want %+v", got, want)
	}
}

func TestVisibleRange_WithinGridForAllZoomLevels(t *testing.T) {
	cfg := config.Default()
	offsets := []float64{-1e6, -50000, -3000, -1, 0, 1, 400, 799, 5000, 1e6}
	for zoom := cfg.MinZoomLevel; zoom <= cfg.MaxZoomLevel; zoom++ {
		for _, ox := range offsets {
			for _, oy := range offsets {
				v := testView(cfg, zoom, geometry.V(ox, oy), 800, 600)
				r := VisibleRange(v)
				if r.Empty() {
					continue
				}
				if r.MinCol < 0 || r.MinRow < 0 || r.MaxCol > v.Resolution-1 || r.MaxRow > v.Resolution-1 {
					t.Errorf("zoom %d offset (%v,%v): range %+v outside [0,%d]", zoom, ox, oy, r, v.Resolution-1)
				}
			}
		}
	}
}

func TestTileRenderer_DrawsOnlyLoadedTiles(t *testing.T) {
	cfg := config.Default()
	f := newGatedFetcher()
	cache := tiles.NewCache(f, "assets", "webp")
	defer cache.Close()
	tr := NewTileRenderer(cache)
	s := NewRecorder(800, 600)
	v := testView(cfg, 1, geometry.V(0, 0), 800, 600)

	r := tr.Draw(s, v)
	if r.Count() != 2 {
		t.Fatalf("drawn range count = %d, want 2", r.Count())
	}
	if n := s.Count("image"); n != 0 {
		t.Errorf("images drawn before load = %d, want 0", n)
	}
	tr.Draw(s, v)
	if got := cache.InFlight(); got != 2 {
		t.Errorf("InFlight() after drawing twice = %d, want 2", got)
	}

	close(f.release)
	waitIdle(t, cache)
	imgs := s.Find("image")
	if len(imgs) != 2 {
		t.Fatalf("images drawn by completions = %d, want 2", len(imgs))
	}
	size := v.TileSize()
	for _, op := range imgs {
		if op.W != size || op.H != size || op.Y != 0 || (op.X != 0 && op.X != size) {
			t.Errorf("tile drawn at %v, want (0|%v, 0) size %v", op, size, size)
		}
	}
}

func TestTileRenderer_LateTileUsesCurrentPlacement(t *testing.T) {
	cfg := config.Default()
	f := newGatedFetcher()
	cache := tiles.NewCache(f, "assets", "webp")
	defer cache.Close()
	tr := NewTileRenderer(cache)
	s := NewRecorder(800, 600)

	tr.Draw(s, testView(cfg, 1, geometry.V(0, 0), 800, 600))
	moved := testView(cfg, 1, geometry.V(-100, -50), 800, 600)
	tr.Draw(s, moved)

	close(f.release)
	waitIdle(t, cache)
	size := moved.TileSize()
	imgs := s.Find("image")
	if len(imgs) != 4 {
		t.Fatalf("images drawn = %d, want 4", len(imgs))
	}
	for _, op := range imgs {
		okX := op.X == -100 || op.X == -100+size
		okY := op.Y == -50 || op.Y == -50+size
		if !okX || !okY {
			t.Errorf("late tile drawn at (%v,%v), want placement from offset (-100,-50)", op.X, op.Y)
		}
	}
}

func TestTileRenderer_FailedTileDrawsPlaceholder(t *testing.T) {
	cfg := config.Default()
	f := newGatedFetcher()
	f.fail["assets/2/image-1-0.webp"] = true
	cache := tiles.NewCache(f, "assets", "webp")
	defer cache.Close()
	tr := NewTileRenderer(cache)
	s := NewRecorder(800, 600)
	v := testView(cfg, 1, geometry.V(0, 0), 800, 600)

	tr.Draw(s, v)
	close(f.release)
	waitIdle(t, cache)

	if got := cache.Status(tiles.Key{Level: 2, Col: 1, Row: 0}); got != assets.StatusFailed {
		t.Errorf("status = %v, want failed", got)
	}
	s.Reset()
	tr.Draw(s, v)
	if s.Count("image") != 1 || s.Count("rect") != 1 {
		t.Errorf("redraw ops:\n%s\nwant one image and one placeholder rect", s)
	}
	if cache.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0 after failure", cache.InFlight())
	}
}
