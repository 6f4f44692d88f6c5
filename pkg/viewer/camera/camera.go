// Package camera models the map view: a screen-space offset and a discrete
// zoom level, with animated transitions between zoom levels.
package camera

import (
	"math"
	"time"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/config"
)

// State is one committed or target camera position.
type State struct {
	Offset    geometry.Vec
	ZoomLevel int
}

// Camera holds the previous and next states of a zoom transition. When idle
// both are equal.
type Camera struct {
	cfg *config.Config

	prev, next State
	animStart  time.Time // zero when idle
	resolution int       // resolution level for the current or last transition

	dragging   bool
	dragAnchor geometry.Vec // pointer minus offset at drag start

	// Interpolated values from the last Tick.
	offset geometry.Vec
	zoom   float64
}

// New creates an idle camera at the configured initial offset and zoom.
func New(cfg *config.Config) *Camera {
	c := &Camera{cfg: cfg}
	c.Reset()
	return c
}

// Reset returns to the configured initial view and abandons any transition.
func (c *Camera) Reset() {
	c.dragging = false
	c.Set(State{
		Offset:    geometry.V(c.cfg.DefaultOffset.X, c.cfg.DefaultOffset.Y),
		ZoomLevel: c.cfg.InitialZoomLevel,
	})
}

// Set jumps to s without a transition. The zoom level is clamped to the
// configured bounds.
func (c *Camera) Set(s State) {
	s.ZoomLevel = max(c.cfg.MinZoomLevel, min(s.ZoomLevel, c.cfg.MaxZoomLevel))
	c.prev, c.next = s, s
	c.animStart = time.Time{}
	c.resolution = c.cfg.ResolutionFor(s.ZoomLevel)
	c.offset = s.Offset
	c.zoom = c.CameraZoom(s.ZoomLevel, c.resolution)
}

// CameraZoom returns the per-tile zoom factor for a zoom level drawn at a
// resolution level: 2 * base^(zoom - offset) / resolution.
func (c *Camera) CameraZoom(zoomLevel, resolution int) float64 {
	return 2 * math.Pow(c.cfg.ZoomStepBase, float64(zoomLevel-c.cfg.ZoomLevelOffset)) / float64(resolution)
}

// Animating reports whether a zoom transition is running.
func (c *Camera) Animating() bool { return !c.animStart.IsZero() }

// Dragging reports whether a drag is active.
func (c *Camera) Dragging() bool { return c.dragging }

// ZoomLevel returns the target zoom level; overlays filter on it.
func (c *Camera) ZoomLevel() int { return c.next.ZoomLevel }

// Target returns the state the camera is heading to.
func (c *Camera) Target() State { return c.next }

// Zoom starts a transition one step in direction dir (+1 in, -1 out) about
// the screen point cursor. It returns false without changing anything when a
// transition or drag is in progress or the new level is out of bounds.
func (c *Camera) Zoom(dir int, cursor geometry.Vec, now time.Time) bool {
	if dir == 0 || c.Animating() || c.dragging {
		return false
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	level := c.prev.ZoomLevel + dir
	if level < c.cfg.MinZoomLevel || level > c.cfg.MaxZoomLevel {
		return false
	}

	factor := math.Pow(c.cfg.ZoomStepBase, float64(dir))
	c.next = State{
		Offset:    cursor.Sub(cursor.Sub(c.prev.Offset).Scale(factor)),
		ZoomLevel: level,
	}
	c.resolution = c.cfg.ResolutionFor(level)
	// Progress 0 keeps the old scale under the new resolution.
	c.zoom = c.CameraZoom(c.prev.ZoomLevel, c.resolution)
	c.animStart = now
	return true
}

// Tick advances the transition to now and returns its progress in [0, 1].
// Progress 1 commits the target state and returns the camera to idle.
func (c *Camera) Tick(now time.Time) float64 {
	p := 1.0
	if c.Animating() {
		p = float64(now.Sub(c.animStart)) / float64(c.cfg.AnimationDuration())
		p = math.Max(0, math.Min(p, 1))
	}

	c.offset = geometry.Lerp(c.prev.Offset, c.next.Offset, p)
	c.zoom = geometry.LerpFloat(
		c.CameraZoom(c.prev.ZoomLevel, c.resolution),
		c.CameraZoom(c.next.ZoomLevel, c.resolution),
		p,
	)

	if p >= 1 {
		c.prev = c.next
		c.animStart = time.Time{}
	}
	return p
}

// BeginDrag anchors a drag at screen point p.
func (c *Camera) BeginDrag(p geometry.Vec) {
	c.dragging = true
	c.dragAnchor = p.Sub(c.offset)
}

// DragTo moves the offset so the anchored world point follows p. It applies
// immediately, also during a transition, where only the zoom factor keeps
// interpolating.
func (c *Camera) DragTo(p geometry.Vec) {
	if !c.dragging {
		return
	}
	c.setOffset(p.Sub(c.dragAnchor))
}

// EndDrag finishes a drag.
func (c *Camera) EndDrag() { c.dragging = false }

// Pan shifts the offset by d screen pixels immediately.
func (c *Camera) Pan(d geometry.Vec) {
	c.setOffset(c.offset.Add(d))
}

func (c *Camera) setOffset(o geometry.Vec) {
	c.prev.Offset = o
	c.next.Offset = o
	c.offset = o
}

// Offset returns the interpolated offset from the last Tick.
func (c *Camera) Offset() geometry.Vec { return c.offset }

// ZoomFactor returns the interpolated per-tile zoom from the last Tick.
func (c *Camera) ZoomFactor() float64 { return c.zoom }

// Resolution returns the active resolution level.
func (c *Camera) Resolution() int { return c.resolution }

// Scale converts world units to screen pixels.
func (c *Camera) Scale() float64 { return c.zoom * float64(c.resolution) }

// ScreenToWorld maps a screen point to world coordinates.
func (c *Camera) ScreenToWorld(p geometry.Vec) geometry.Vec {
	return p.Sub(c.offset).Div(c.Scale())
}

// WorldToScreen maps a world point to screen coordinates.
func (c *Camera) WorldToScreen(w geometry.Vec) geometry.Vec {
	return w.Scale(c.Scale()).Add(c.offset)
}

// View snapshots the interpolated camera for a viewport of w x h pixels.
func (c *Camera) View(w, h int) View {
	return View{
		Offset:       c.offset,
		ZoomFactor:   c.zoom,
		Resolution:   c.resolution,
		ZoomLevel:    c.next.ZoomLevel,
		Width:        w,
		Height:       h,
		BaseTileSize: c.cfg.BaseTileSize,
	}
}
