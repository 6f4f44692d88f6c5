// Package render draws the tile pyramid and its vector overlays onto a
// backend-neutral Surface, and answers pointer queries against what it drew.
package render

import (
	"image"
	"image/color"
)

// Surface is the drawing target the renderers use. All coordinates are screen
// pixels. Implementations exist for ebiten (interactive) and for an in-memory
// RGBA image (screenshots and headless tools).
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)

	// Clear fills the whole surface with c.
	Clear(c color.Color)

	// DrawImage draws img scaled into the rectangle at (x, y) of size w x h.
	DrawImage(img image.Image, x, y, w, h float64)

	// FillRect fills a rectangle; c may be translucent.
	FillRect(x, y, w, h float64, c color.Color)

	// StrokeCircle outlines a circle centred at (cx, cy).
	StrokeCircle(cx, cy, r, width float64, c color.Color)

	// StrokeLine draws a straight line.
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)

	// DrawText draws s with its baseline starting at (x, y).
	DrawText(s string, x, y, size float64, c color.Color)

	// MeasureText returns the advance width of s at the given size.
	MeasureText(s string, size float64) float64
}

// Palette shared by the renderers.
var (
	ColorBackground  = color.RGBA{15, 15, 26, 255}   // Behind the raster where no tile is drawn
	ColorPlaceholder = color.RGBA{40, 40, 56, 255}   // Tile that failed to load
	ColorLabelBg     = color.NRGBA{0, 0, 0, 77}      // Black at 30%
	ColorLabelText   = color.RGBA{231, 219, 145, 255} // #e7db91
)
