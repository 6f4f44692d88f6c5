package camera

import (
	"math"
	"testing"
	"time"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/config"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestCamera(t *testing.T) (*Camera, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.DefaultOffset = config.Point{}
	return New(cfg), cfg
}

// settle runs a started transition to completion.
func settle(c *Camera, start time.Time, cfg *config.Config) time.Time {
	end := start.Add(cfg.AnimationDuration())
	c.Tick(end)
	return end
}

func near(a, b geometry.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestCameraZoom_Formula(t *testing.T) {
	c, _ := newTestCamera(t)
	// 2 * 1.5^(1-4) / 2
	want := 2 * math.Pow(1.5, -3) / 2
	if got := c.CameraZoom(1, 2); math.Abs(got-want) > 1e-12 {
		t.Errorf("CameraZoom(1, 2) = %v, want %v", got, want)
	}
}

func TestZoom_KeepsWorldPointUnderCursor(t *testing.T) {
	cursors := []geometry.Vec{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 799, Y: 12}, {X: 123.5, Y: 599}}
	for _, dir := range []int{1, -1} {
		for _, cursor := range cursors {
			c, cfg := newTestCamera(t)
			c.Pan(geometry.V(-37, 81))
			now := t0
			// Start from zoom 5 so both directions are in range.
			for i := 0; i < 4; i++ {
				if !c.Zoom(1, geometry.V(0, 0), now) {
					t.Fatal("setup zoom rejected")
				}
				now = settle(c, now, cfg)
			}

			before := c.ScreenToWorld(cursor)
			if !c.Zoom(dir, cursor, now) {
				t.Fatalf("Zoom(%d) rejected", dir)
			}
			settle(c, now, cfg)
			if after := c.WorldToScreen(before); !near(after, cursor) {
				t.Errorf("dir %d cursor %v: world point maps to %v after zoom", dir, cursor, after)
			}
		}
	}
}

func TestZoom_AcrossResolutionBands(t *testing.T) {
	cursor := geometry.V(400, 300)
	for _, from := range []int{3, 6, 8} {
		for _, dir := range []int{1, -1} {
			start := from
			if dir < 0 {
				start = from + 1
			}
			c, cfg := newTestCamera(t)
			c.Set(State{Offset: geometry.V(-120, 45), ZoomLevel: start})
			scale := c.Scale()
			before := c.ScreenToWorld(cursor)
			oldRes := c.Resolution()

			if !c.Zoom(dir, cursor, t0) {
				t.Fatalf("zoom %d from %d rejected", dir, start)
			}
			if c.Resolution() == oldRes {
				t.Fatalf("zoom %d from %d stayed at resolution %d", dir, start, oldRes)
			}
			// Before any Tick the view must not jump.
			if got := c.Scale(); math.Abs(got-scale) > 1e-9 {
				t.Errorf("Scale() right after zoom = %v, want %v", got, scale)
			}
			if got := c.ScreenToWorld(cursor); !near(got, before) {
				t.Errorf("ScreenToWorld(cursor) right after zoom = %v, want %v", got, before)
			}

			settle(c, t0, cfg)
			if after := c.WorldToScreen(before); !near(after, cursor) {
				t.Errorf("zoom %d across band: world point maps to %v, want %v", dir, after, cursor)
			}
		}
	}
}

func TestZoom_RejectedDuringTransition(t *testing.T) {
	c, _ := newTestCamera(t)
	if !c.Zoom(1, geometry.V(10, 10), t0) {
		t.Fatal("first Zoom rejected")
	}
	c.Tick(t0.Add(50 * time.Millisecond))
	target := c.Target()
	if c.Zoom(1, geometry.V(500, 500), t0.Add(60*time.Millisecond)) {
		t.Error("Zoom during transition accepted, want rejected")
	}
	if c.Target() != target {
		t.Errorf("target changed by rejected zoom: %+v -> %+v", target, c.Target())
	}
}

func TestZoom_OutOfBoundsIsNoOp(t *testing.T) {
	c, _ := newTestCamera(t)
	before := c.Target()
	if c.Zoom(-1, geometry.V(100, 100), t0) {
		t.Error("Zoom below MinZoomLevel accepted")
	}
	if c.Animating() || c.Target() != before {
		t.Error("rejected zoom changed camera state")
	}
}

func TestTick_ProgressAndCommit(t *testing.T) {
	c, cfg := newTestCamera(t)
	c.Zoom(1, geometry.V(0, 0), t0)

	if p := c.Tick(t0.Add(100 * time.Millisecond)); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("Tick at half duration = %v, want 0.5", p)
	}
	res := c.Resolution()
	mid := (c.CameraZoom(1, res) + c.CameraZoom(2, res)) / 2
	if math.Abs(c.ZoomFactor()-mid) > 1e-12 {
		t.Errorf("ZoomFactor at half = %v, want %v", c.ZoomFactor(), mid)
	}
	if !c.Animating() {
		t.Error("Animating() = false mid-transition")
	}

	if p := c.Tick(t0.Add(10 * cfg.AnimationDuration())); p != 1 {
		t.Errorf("Tick after end = %v, want 1", p)
	}
	if c.Animating() {
		t.Error("Animating() = true after completion")
	}
	if c.ZoomLevel() != 2 {
		t.Errorf("ZoomLevel() = %d, want 2", c.ZoomLevel())
	}
}

func TestResolution_FollowsBands(t *testing.T) {
	c, cfg := newTestCamera(t)
	now := t0
	want := []int{2, 2, 2, 4, 4, 4, 8, 8, 16, 16}
	for z := 1; z <= cfg.MaxZoomLevel; z++ {
		if got := c.Resolution(); got != want[z-1] {
			t.Errorf("zoom %d: Resolution() = %d, want %d", z, got, want[z-1])
		}
		if v := c.View(800, 600); v.TileSize() <= 0 {
			t.Errorf("zoom %d: TileSize() = %v, want positive", z, v.TileSize())
		}
		if z < cfg.MaxZoomLevel {
			c.Zoom(1, geometry.V(400, 300), now)
			now = settle(c, now, cfg)
		}
	}
}

func TestDrag_OverridesOffsetDuringTransition(t *testing.T) {
	c, _ := newTestCamera(t)
	c.Tick(t0)
	c.Zoom(1, geometry.V(400, 300), t0)
	c.Tick(t0.Add(40 * time.Millisecond))

	c.BeginDrag(geometry.V(100, 100))
	start := c.Offset()
	c.DragTo(geometry.V(130, 90))
	if got, want := c.Offset(), start.Add(geometry.V(30, -10)); !near(got, want) {
		t.Errorf("Offset after DragTo = %v, want %v", got, want)
	}

	c.Tick(t0.Add(120 * time.Millisecond))
	if got, want := c.Offset(), start.Add(geometry.V(30, -10)); !near(got, want) {
		t.Errorf("Offset after Tick during drag = %v, want %v", got, want)
	}
	if c.Zoom(1, geometry.V(0, 0), t0.Add(500*time.Millisecond)) {
		t.Error("Zoom while dragging accepted")
	}
	c.EndDrag()
	if c.Dragging() {
		t.Error("Dragging() = true after EndDrag")
	}
}

func TestView_WorldBox(t *testing.T) {
	c, _ := newTestCamera(t)
	c.Tick(t0)
	v := c.View(800, 600)
	box := v.WorldBox()
	s := v.Scale()
	if math.Abs(box.Max.X-800/s) > 1e-9 || math.Abs(box.Max.Y-600/s) > 1e-9 || box.Min != (geometry.Vec{}) {
		t.Errorf("WorldBox = %+v, want [0,%v]x[0,%v]", box, 800/s, 600/s)
	}
}

func TestReset(t *testing.T) {
	c, cfg := newTestCamera(t)
	c.Zoom(1, geometry.V(10, 10), t0)
	settle(c, t0, cfg)
	c.Pan(geometry.V(5, 5))
	c.Reset()
	if c.ZoomLevel() != cfg.InitialZoomLevel || c.Offset() != (geometry.Vec{}) {
		t.Errorf("after Reset zoom %d offset %v", c.ZoomLevel(), c.Offset())
	}
}
