package ebiten

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"worldmap/pkg/viewer/render"
)

// calloutLines lists the hovered quest items, one per line, after a title.
func calloutLines(refs []render.QuestRef) []string {
	lines := []string{tr("CALLOUT_TITLE")}
	for i, ref := range refs {
		if i == calloutMaxQuests {
			lines = append(lines, fmt.Sprintf(tr("CALLOUT_MORE"), len(refs)-i))
			break
		}
		if ref.Item.Giver != "" {
			lines = append(lines, fmt.Sprintf(tr("CALLOUT_ITEM_GIVER"), ref.Item.Name, ref.Item.Giver))
		} else {
			lines = append(lines, ref.Item.Name)
		}
	}
	return lines
}

// drawHoverCallout draws a box listing the quest items under the pointer.
// The box sits below-right of the cursor and flips to stay on screen.
func (e *EbitenRenderer) drawHoverCallout(screen *ebiten.Image) {
	refs := e.view.Hovered()
	if len(refs) == 0 {
		return
	}
	lines := calloutLines(refs)
	face := e.getSansFontFace(hudFontSize)
	lineHeight := face.Size + hudLineSpacing

	textW := 0.0
	for _, l := range lines {
		if w, _ := text.Measure(l, face, 0); w > textW {
			textW = w
		}
	}
	boxW := textW + hudPadding*2
	boxH := float64(len(lines))*lineHeight + hudPadding*2 - hudLineSpacing

	p := e.view.Pointer()
	x, y := p.X+calloutOffset, p.Y+calloutOffset
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if x+boxW > float64(sw) {
		x = p.X - calloutOffset - boxW
	}
	if y+boxH > float64(sh) {
		y = p.Y - calloutOffset - boxH
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), colorPanelBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 1, colorCalloutBorder, false)

	ty := y + hudPadding
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+hudPadding, ty)
		if i == 0 {
			op.ColorScale.ScaleWithColor(colorCalloutTitle)
		} else {
			op.ColorScale.ScaleWithColor(colorText)
		}
		text.Draw(screen, l, face, op)
		ty += lineHeight
	}
}
