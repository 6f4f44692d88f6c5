package mapview

import (
	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/render"
)

// Status is a snapshot of the viewer for HUDs and diagnostics.
type Status struct {
	ZoomLevel  int
	Resolution int
	Scale      float64
	Offset     geometry.Vec
	Animating  bool
	Dragging   bool

	Range     render.TileRange
	InFlight  int
	Requested int
	Loaded    int
	Failed    int

	Markers int
	Hits    int
	Hover   bool
	Frames  int
}

// Status reports the current state of the viewer.
func (m *MapView) Status() Status {
	requested, loaded, failed := m.tiles.Stats()
	return Status{
		ZoomLevel:  m.cam.ZoomLevel(),
		Resolution: m.cam.Resolution(),
		Scale:      m.cam.Scale(),
		Offset:     m.cam.Offset(),
		Animating:  m.cam.Animating(),
		Dragging:   m.cam.Dragging(),
		Range:      m.lastRange,
		InFlight:   m.tiles.InFlight(),
		Requested:  requested,
		Loaded:     loaded,
		Failed:     failed,
		Markers:    m.overlay.MarkersDrawn(),
		Hits:       len(m.overlay.Hits()),
		Hover:      m.overlay.HoverEnabled(),
		Frames:     m.frames,
	}
}
