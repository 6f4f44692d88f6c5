package mapview

import (
	"context"
	"time"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/camera"
	"worldmap/pkg/viewer/render"
)

// CenterOn jumps, without animation, to zoomLevel with the world point w in
// the middle of the viewport.
func (m *MapView) CenterOn(w geometry.Vec, zoomLevel int) {
	m.cam.Set(camera.State{ZoomLevel: zoomLevel})
	center := geometry.V(float64(m.width)/2, float64(m.height)/2)
	m.cam.Set(camera.State{
		Offset:    center.Sub(w.Scale(m.cam.Scale())),
		ZoomLevel: m.cam.ZoomLevel(),
	})
	m.dirty = true
	m.updateHover()
}

// RenderSettled draws the current view onto s once every visible tile and
// icon has finished loading, so the result includes all overlays. It is
// meant for headless use where no render loop is running.
func (m *MapView) RenderSettled(ctx context.Context, s render.Surface, now time.Time) error {
	for {
		m.Invalidate()
		m.Frame(s, now)
		if m.tiles.InFlight() == 0 && m.icons.InFlight() == 0 {
			return nil
		}
		if err := m.tiles.WaitIdle(ctx); err != nil {
			return err
		}
		if err := m.icons.WaitIdle(ctx); err != nil {
			return err
		}
	}
}
