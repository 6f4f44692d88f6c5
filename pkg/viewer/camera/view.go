package camera

import "worldmap/pkg/engine/geometry"

// View is an immutable snapshot of the camera that renderers draw from.
type View struct {
	Offset       geometry.Vec
	ZoomFactor   float64 // per-tile zoom at Resolution
	Resolution   int     // tile grid size of the active pyramid level
	ZoomLevel    int     // target zoom level
	Width        int     // viewport width in pixels
	Height       int     // viewport height in pixels
	BaseTileSize float64
}

// Scale converts world units to screen pixels.
func (v View) Scale() float64 { return v.ZoomFactor * float64(v.Resolution) }

// TileSize is the on-screen edge of one tile.
func (v View) TileSize() float64 { return v.BaseTileSize * v.ZoomFactor }

// ToScreen maps a world point to screen coordinates.
func (v View) ToScreen(w geometry.Vec) geometry.Vec {
	return w.Scale(v.Scale()).Add(v.Offset)
}

// ToWorld maps a screen point to world coordinates.
func (v View) ToWorld(p geometry.Vec) geometry.Vec {
	return p.Sub(v.Offset).Div(v.Scale())
}

// WorldBox is the viewport expressed in world coordinates.
func (v View) WorldBox() geometry.Box {
	return geometry.BoxOf(
		v.ToWorld(geometry.V(0, 0)),
		v.ToWorld(geometry.V(float64(v.Width), float64(v.Height))),
	)
}
