// Package devtools provides headless rendering and debugging output for the
// map viewer: a software surface, PNG screenshots and text dumps of a view.
package devtools

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	fontOnce sync.Once
	sansFont *opentype.Font
)

func parsedFont() *opentype.Font {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			sansFont = f
		}
	})
	return sansFont
}

// Raster is a render.Surface that draws into an in-memory RGBA image.
type Raster struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	faces map[float64]font.Face
}

// NewRaster creates a w x h software surface.
func NewRaster(w, h int) *Raster {
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		z:     vector.NewRasterizer(w, h),
		faces: make(map[float64]font.Face),
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	dr := image.Rect(round(x), round(y), round(x+w), round(y+h))
	if dr.Empty() || !dr.Overlaps(r.img.Bounds()) {
		return
	}
	draw.ApproxBiLinear.Scale(r.img, dr, img, img.Bounds(), draw.Over, nil)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	dr := image.Rect(round(x), round(y), round(x+w), round(y+h))
	draw.Draw(r.img, dr, image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeCircle fills the ring between r-width/2 and r+width/2. The inner
// contour runs the other way round so it cancels out.
func (r *Raster) StrokeCircle(cx, cy, radius, width float64, c color.Color) {
	outer := radius + width/2
	inner := math.Max(radius-width/2, 0)
	n := int(math.Max(24, outer*2))

	w, h := r.Size()
	r.z.Reset(w, h)
	r.circle(cx, cy, outer, n, 1)
	if inner > 0 {
		r.circle(cx, cy, inner, n, -1)
	}
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) circle(cx, cy, radius float64, n int, dir float64) {
	for i := 0; i <= n; i++ {
		a := dir * 2 * math.Pi * float64(i) / float64(n)
		x, y := float32(cx+radius*math.Cos(a)), float32(cy+radius*math.Sin(a))
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

// StrokeLine fills the quad of the given width around the segment.
func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	w, h := r.Size()
	r.z.Reset(w, h)
	r.z.MoveTo(float32(x0+nx), float32(y0+ny))
	r.z.LineTo(float32(x1+nx), float32(y1+ny))
	r.z.LineTo(float32(x1-nx), float32(y1-ny))
	r.z.LineTo(float32(x0-nx), float32(y0-ny))
	r.z.ClosePath()
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Raster) DrawText(s string, x, y, size float64, c color.Color) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face(size),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

func (r *Raster) MeasureText(s string, size float64) float64 {
	return float64(font.MeasureString(r.face(size), s)) / 64
}

// face returns a Go Regular face of the given pixel size, falling back to
// the fixed 7x13 face if the font cannot be used.
func (r *Raster) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	var face font.Face = basicfont.Face7x13
	if f := parsedFont(); f != nil {
		if of, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull}); err == nil {
			face = of
		}
	}
	r.faces[size] = face
	return face
}

// Close releases font faces.
func (r *Raster) Close() {
	for size, f := range r.faces {
		f.Close()
		delete(r.faces, size)
	}
}

func round(v float64) int { return int(math.Round(v)) }
