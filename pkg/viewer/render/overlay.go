package render

import (
	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/camera"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/tiles"
	"worldmap/pkg/viewer/world"
)

// Style sizes the overlay elements.
type Style struct {
	IconSize      float64 // Location icon edge in pixels
	LabelFontSize float64 // Location label size in pixels
	MarkerRadius  float64 // Quest vertex radius in world units
	LineWidth     float64 // Quest stroke width in pixels
	MinZoom       int     // Default lower bound for markers without one
	MaxZoom       int     // Default upper bound for markers without one
}

// StyleFromConfig derives the overlay style from the viewer configuration.
func StyleFromConfig(cfg *config.Config) Style {
	return Style{
		IconSize:      cfg.IconSize,
		LabelFontSize: cfg.LabelFontSize,
		MarkerRadius:  cfg.MarkerRadius,
		LineWidth:     cfg.QuestLineWidth,
		MinZoom:       cfg.MinZoomLevel,
		MaxZoom:       cfg.MaxZoomLevel,
	}
}

// Overlay draws location markers and quest paths above the tiles and keeps
// the hit-test records of the latest draw.
type Overlay struct {
	style Style
	data  *world.Data
	icons *tiles.IconCache

	hits         []Hit
	hoverEnabled bool
	markers      int
}

// NewOverlay creates an overlay for the given tables. icons may be nil, in
// which case markers are drawn as labels only.
func NewOverlay(style Style, data *world.Data, icons *tiles.IconCache) *Overlay {
	return &Overlay{style: style, data: data, icons: icons}
}

// Draw renders every zoom-eligible marker and quest element visible in v.
// Hit-test records are rebuilt from scratch.
func (o *Overlay) Draw(s Surface, v camera.View) {
	o.Reset()
	box := v.WorldBox()

	for i := range o.data.Markers {
		m := &o.data.Markers[i]
		if !m.VisibleAt(v.ZoomLevel, o.style.MinZoom, o.style.MaxZoom) || !box.Contains(m.Pos()) {
			continue
		}
		o.drawMarker(s, v, m)
		o.markers++
	}

	for qi := range o.data.Quests {
		q := &o.data.Quests[qi]
		for ii := range q.Items {
			o.drawQuestItem(s, v, box, q, &q.Items[ii])
		}
	}
}

// Reset drops the hit-test records, e.g. when a frame skips the overlay.
func (o *Overlay) Reset() {
	o.hits = o.hits[:0]
	o.markers = 0
}

// MarkersDrawn returns how many markers the latest Draw placed.
func (o *Overlay) MarkersDrawn() int { return o.markers }

func (o *Overlay) drawMarker(s Surface, v camera.View, m *world.Marker) {
	p := v.ToScreen(m.Pos())
	half := o.style.IconSize / 2

	if o.icons != nil {
		if icon := o.icons.Request(m.Type.Icon()); icon.Loaded() {
			s.DrawImage(icon.Image(), p.X-half, p.Y-half, o.style.IconSize, o.style.IconSize)
		}
	}

	size := o.style.LabelFontSize
	bgW := s.MeasureText(m.Name, size) + 6
	x := p.X + half
	if x+bgW > float64(v.Width) {
		x = p.X - half - bgW
	}
	y := p.Y - half
	s.FillRect(x, y, bgW, size, ColorLabelBg)
	s.DrawText(m.Name, x+4, y+size*13/16, size, ColorLabelText)
}

func (o *Overlay) drawQuestItem(s Surface, v camera.View, box geometry.Box, q *world.Quest, item *world.QuestItem) {
	col := q.RGBA()
	r := o.style.MarkerRadius

	for i := 1; i < len(item.Path); i++ {
		a, b := item.Path[i-1], item.Path[i]
		if !geometry.SegmentVisible(a, b, box) {
			continue
		}
		a, b, ok := geometry.Inset(a, b, r)
		if !ok {
			continue
		}
		sa, sb := v.ToScreen(a), v.ToScreen(b)
		s.StrokeLine(sa.X, sa.Y, sb.X, sb.Y, o.style.LineWidth, col)
	}

	vertexBox := box.Expand(r)
	for i, p := range item.Path {
		if !vertexBox.Contains(p) {
			continue
		}
		c := geometry.Circle{Center: v.ToScreen(p), Radius: r * v.Scale(), LineWidth: o.style.LineWidth}
		s.StrokeCircle(c.Center.X, c.Center.Y, c.Radius, c.LineWidth, col)
		o.hits = append(o.hits, Hit{Ref: QuestRef{Quest: q, Item: item, Vertex: i}, Path: c})
	}
}
