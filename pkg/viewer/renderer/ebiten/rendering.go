package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
)

// tr looks up a translated format string. It is a variable so vet does not
// treat translation keys as printf formats.
var tr = gotext.Get

// hudLine is one line of HUD text with its color
type hudLine struct {
	text  string
	color color.Color
}

// Draw renders the map canvas and the HUD (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	if e.canvas == nil {
		return
	}
	screen.DrawImage(e.canvas.img, nil)

	if e.monoFontSource == nil || e.sansFontSource == nil {
		return
	}
	if e.hudVisible {
		e.drawHUD(screen)
	}
	e.drawHoverCallout(screen)
}

// hudLines builds the HUD contents from the view's status
func (e *EbitenRenderer) hudLines() []hudLine {
	st := e.view.Status()
	r := e.view.Readout()

	lines := []hudLine{
		{fmt.Sprintf(tr("HUD_ZOOM"), st.ZoomLevel, e.cfg.MaxZoomLevel, st.Resolution, st.Resolution), colorText},
		{fmt.Sprintf(tr("HUD_CURSOR"), r.X, r.Y), colorText},
		{fmt.Sprintf(tr("HUD_TILES"), st.Loaded, st.Requested), colorSubtle},
	}
	if st.InFlight > 0 {
		lines = append(lines, hudLine{fmt.Sprintf(tr("HUD_LOADING"), st.InFlight), colorLoading})
	}
	if st.Failed > 0 {
		lines = append(lines, hudLine{fmt.Sprintf(tr("HUD_FAILED"), st.Failed), colorFailed})
	}
	if st.Hover {
		lines = append(lines, hudLine{tr("HUD_HOVER_ON"), colorSubtle})
	}
	return lines
}

// drawHUD draws the status panel in the top-left corner
func (e *EbitenRenderer) drawHUD(screen *ebiten.Image) {
	lines := e.hudLines()
	face := e.getMonoFontFace()
	lineHeight := face.Size + hudLineSpacing

	maxWidth := 0.0
	for _, l := range lines {
		if w, _ := text.Measure(l.text, face, 0); w > maxWidth {
			maxWidth = w
		}
	}

	panelW := maxWidth + hudPadding*2
	panelH := float64(len(lines))*lineHeight + hudPadding*2 - hudLineSpacing
	vector.DrawFilledRect(screen, float32(hudPadding), float32(hudPadding),
		float32(panelW), float32(panelH), colorPanelBackground, false)

	y := hudPadding * 2
	for _, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudPadding*2, y)
		op.ColorScale.ScaleWithColor(l.color)
		text.Draw(screen, l.text, face, op)
		y += lineHeight
	}
}
