// Package mapview drives one map viewer: it feeds pointer and keyboard input
// to the camera and, once per tick, redraws tiles and overlays when anything
// changed.
package mapview

import (
	"fmt"
	"time"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/engine/input"
	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/camera"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/render"
	"worldmap/pkg/viewer/tiles"
	"worldmap/pkg/viewer/world"
)

// Readout is the world coordinate under the pointer, one decimal each.
type Readout struct {
	X, Y string
}

// MapView owns the camera, the caches and the renderers of one viewer.
// All methods must be called from the render loop's goroutine.
type MapView struct {
	cfg  *config.Config
	data *world.Data

	cam          *camera.Camera
	tiles        *tiles.Cache
	icons        *tiles.IconCache
	tileRenderer *render.TileRenderer
	overlay      *render.Overlay

	width, height int

	dirty          bool // a full redraw is due
	overlayPending bool // the last redraw skipped overlays because tiles were loading

	pointer   geometry.Vec
	readout   Readout
	hovered   []render.QuestRef
	lastRange render.TileRange
	frames    int
}

// New creates a viewer of w x h pixels loading assets through f.
func New(cfg *config.Config, f assets.Fetcher, data *world.Data, w, h int) *MapView {
	cache := tiles.NewCache(f, cfg.AssetRoot, cfg.ImageExt)
	icons := tiles.NewIconCache(f, cfg.AssetRoot, cfg.ImageExt)
	m := &MapView{
		cfg:          cfg,
		data:         data,
		cam:          camera.New(cfg),
		tiles:        cache,
		icons:        icons,
		tileRenderer: render.NewTileRenderer(cache),
		overlay:      render.NewOverlay(render.StyleFromConfig(cfg), data, icons),
		width:        w,
		height:       h,
		dirty:        true,
	}
	cache.OnInFlightChange(func(n int) {
		if n == 0 && m.overlayPending {
			m.dirty = true
		}
	})
	// Icons are shared by type, so fetch them all up front.
	for _, t := range data.Types() {
		icons.Request(t.Icon())
	}
	m.updateHover()
	return m
}

// Close abandons outstanding asset loads.
func (m *MapView) Close() {
	m.tiles.Close()
	m.icons.Close()
}

// HandleEvent applies one pointer or viewport event.
func (m *MapView) HandleEvent(ev input.PointerEvent, now time.Time) {
	p := geometry.V(ev.X, ev.Y)
	switch ev.Kind {
	case input.PointerDown:
		m.pointer = p
		m.cam.BeginDrag(p)
	case input.PointerMove:
		m.pointer = p
		if m.cam.Dragging() {
			m.cam.DragTo(p)
			m.dirty = true
		}
		m.updateReadout()
		m.queryHover()
	case input.PointerUp:
		m.cam.EndDrag()
	case input.Wheel:
		m.pointer = p
		if m.cam.Zoom(input.ZoomDirection(ev.Delta), p, now) {
			m.dirty = true
		}
		m.queryHover()
	case input.Resize:
		m.Resize(ev.W, ev.H)
	}
}

// HandleIntent applies a camera intent and reports whether it was one.
// Screenshots, dumps and quitting are left to the caller.
func (m *MapView) HandleIntent(in input.Intent, now time.Time) bool {
	step := m.cfg.PanStep
	center := geometry.V(float64(m.width)/2, float64(m.height)/2)
	switch in.Action {
	case input.ActionZoomIn:
		m.dirty = m.cam.Zoom(1, center, now) || m.dirty
	case input.ActionZoomOut:
		m.dirty = m.cam.Zoom(-1, center, now) || m.dirty
	case input.ActionPanUp:
		m.pan(geometry.V(0, step))
	case input.ActionPanDown:
		m.pan(geometry.V(0, -step))
	case input.ActionPanLeft:
		m.pan(geometry.V(step, 0))
	case input.ActionPanRight:
		m.pan(geometry.V(-step, 0))
	case input.ActionResetView:
		m.cam.Reset()
		m.dirty = true
	default:
		return false
	}
	return true
}

func (m *MapView) pan(d geometry.Vec) {
	m.cam.Pan(d)
	m.dirty = true
	m.updateReadout()
}

// Resize changes the viewport size and schedules a redraw.
func (m *MapView) Resize(w, h int) {
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.dirty = true
}

// Invalidate schedules a full redraw, e.g. after the host lost the surface.
func (m *MapView) Invalidate() { m.dirty = true }

// Frame runs one render tick on s. Finished loads are applied first, so a
// tile that arrives now is drawn by its completion callback. A full redraw
// (tiles, then overlays) happens only while animating or when something
// changed; overlays are skipped while tiles are in flight. It reports
// whether a full redraw happened.
func (m *MapView) Frame(s render.Surface, now time.Time) bool {
	m.tiles.Poll()
	if m.icons.Poll() > 0 {
		m.dirty = true
	}

	if !m.dirty && !m.cam.Animating() {
		return false
	}

	m.cam.Tick(now)
	v := m.cam.View(m.width, m.height)

	s.Clear(render.ColorBackground)
	m.lastRange = m.tileRenderer.Draw(s, v)

	if m.tiles.InFlight() == 0 {
		m.overlay.Draw(s, v)
		m.overlayPending = false
	} else {
		m.overlay.Reset()
		m.overlayPending = true
	}

	m.dirty = false
	m.frames++
	m.updateHover()
	return true
}

func (m *MapView) updateHover() {
	on := m.cam.ZoomLevel() >= m.cfg.HoverMinZoom
	m.overlay.SetHoverEnabled(on)
	if !on {
		m.hovered = nil
	}
}

func (m *MapView) updateReadout() {
	w := m.cam.ScreenToWorld(m.pointer)
	m.readout = Readout{X: fmt.Sprintf("%.1f", w.X), Y: fmt.Sprintf("%.1f", w.Y)}
}

func (m *MapView) queryHover() {
	if !m.overlay.HoverEnabled() {
		m.hovered = nil
		return
	}
	m.hovered = m.overlay.QueryAt(m.pointer.X, m.pointer.Y)
}

// Readout returns the world coordinate under the pointer as of the last move.
func (m *MapView) Readout() Readout { return m.readout }

// Hovered returns the quest items under the pointer as of the last move or
// wheel event.
func (m *MapView) Hovered() []render.QuestRef { return m.hovered }

// Pointer returns the last pointer position.
func (m *MapView) Pointer() geometry.Vec { return m.pointer }

// InFlight returns the number of tile loads in progress.
func (m *MapView) InFlight() int { return m.tiles.InFlight() }

// Camera exposes the camera for read-only use by backends and tools.
func (m *MapView) Camera() *camera.Camera { return m.cam }

// Tiles exposes the tile cache.
func (m *MapView) Tiles() *tiles.Cache { return m.tiles }

// Icons exposes the icon cache.
func (m *MapView) Icons() *tiles.IconCache { return m.icons }

// Overlay exposes the overlay renderer.
func (m *MapView) Overlay() *render.Overlay { return m.overlay }

// Config returns the viewer settings.
func (m *MapView) Config() *config.Config { return m.cfg }

// Data returns the annotation tables being drawn.
func (m *MapView) Data() *world.Data { return m.data }

// Size returns the viewport size.
func (m *MapView) Size() (w, h int) { return m.width, m.height }
