package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// surface adapts an offscreen Ebiten image to render.Surface.
type surface struct {
	img *ebiten.Image
	e   *EbitenRenderer
}

func (s *surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *surface) Clear(c color.Color) {
	s.img.Fill(c)
}

func (s *surface) DrawImage(img image.Image, x, y, w, h float64) {
	src := s.e.ebitenImage(img)
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(src, op)
}

func (s *surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *surface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (s *surface) DrawText(str string, x, y, size float64, c color.Color) {
	face := s.e.getSansFontFace(size)
	op := &text.DrawOptions{}
	// text.Draw positions the top of the line; callers pass the baseline.
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, face, op)
}

func (s *surface) MeasureText(str string, size float64) float64 {
	w, _ := text.Measure(str, s.e.getSansFontFace(size), 0)
	return w
}

// ebitenImage returns the GPU copy of a decoded image, creating it once.
func (e *EbitenRenderer) ebitenImage(img image.Image) *ebiten.Image {
	e.imagesMutex.Lock()
	defer e.imagesMutex.Unlock()
	if ei, ok := e.images[img]; ok {
		return ei
	}
	ei := ebiten.NewImageFromImage(img)
	e.images[img] = ei
	return ei
}

// ensureCanvas (re)creates the map canvas to match the window size and
// tells the view about the new viewport.
func (e *EbitenRenderer) ensureCanvas(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if e.canvas != nil {
		cw, ch := e.canvas.Size()
		if cw == w && ch == h {
			return
		}
		e.canvas.img.Deallocate()
	}
	e.canvas = &surface{img: ebiten.NewImage(w, h), e: e}
	e.view.Resize(w, h)
	e.view.Invalidate()
}
