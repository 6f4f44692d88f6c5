package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Op is one call recorded by a Recorder.
type Op struct {
	Kind       string // "clear", "image", "rect", "circle", "line" or "text"
	X, Y, W, H float64
	Text       string
	Image      image.Image
	Color      color.Color
}

func (op Op) String() string {
	switch op.Kind {
	case "text":
		return fmt.Sprintf("text %q @(%.1f,%.1f)", op.Text, op.X, op.Y)
	case "clear":
		return "clear"
	default:
		return fmt.Sprintf("%s (%.1f,%.1f %.1fx%.1f)", op.Kind, op.X, op.Y, op.W, op.H)
	}
}

// Recorder is a Surface that records draw calls instead of rasterising them.
// Text is measured as 8 pixels per rune at size 16, scaled linearly.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "image", X: x, Y: y, W: w, H: h, Image: img})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: cx, Y: cy, W: radius, H: width, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x0, Y: y0, W: x1, H: y1, Color: c})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, H: size, Text: s, Color: c})
}

func (r *Recorder) MeasureText(s string, size float64) float64 {
	return float64(len([]rune(s))) * 8 * size / 16
}

// Count returns how many recorded ops are of kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the ops of kind.
func (r *Recorder) Find(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// String lists the recorded ops one per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}
