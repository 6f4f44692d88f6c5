package render

import (
	"github.com/zyedidia/generic/mapset"

	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/world"
)

// QuestRef points at the quest item a drawn vertex belongs to.
type QuestRef struct {
	Quest  *world.Quest
	Item   *world.QuestItem
	Vertex int // index into Item.Path
}

// Hit pairs a drawn quest vertex with the stroke geometry used to draw it.
type Hit struct {
	Ref  QuestRef
	Path geometry.Circle
}

// Hits returns the records of the latest Draw. The slice is reused by the
// next Draw.
func (o *Overlay) Hits() []Hit { return o.hits }

// SetHoverEnabled turns pointer queries on or off.
func (o *Overlay) SetHoverEnabled(on bool) { o.hoverEnabled = on }

// HoverEnabled reports whether pointer queries are answered.
func (o *Overlay) HoverEnabled() bool { return o.hoverEnabled }

// QueryAt returns the quest items whose drawn vertex contains the screen
// point (x, y), each item once, in draw order. It returns nil while hover is
// disabled.
func (o *Overlay) QueryAt(x, y float64) []QuestRef {
	if !o.hoverEnabled {
		return nil
	}
	p := geometry.V(x, y)
	seen := mapset.New[*world.QuestItem]()
	var out []QuestRef
	for _, h := range o.hits {
		if seen.Has(h.Ref.Item) || !h.Path.Contains(p) {
			continue
		}
		seen.Put(h.Ref.Item)
		out = append(out, h.Ref)
	}
	return out
}
