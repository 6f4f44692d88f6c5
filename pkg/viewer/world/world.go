// Package world describes the static annotations drawn over the map:
// location markers and quest paths, in world coordinates.
package world

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	gcolor "github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"worldmap/pkg/engine/geometry"
)

// LocationType groups markers that share one icon.
type LocationType string

const (
	City          LocationType = "city"
	Town          LocationType = "town"
	Fort          LocationType = "fort"
	TelvanniTower LocationType = "telvanni_tower"
)

// icons maps location types to their icon asset names.
var icons = map[LocationType]string{
	City:          "MW-icon-map-City",
	Town:          "MW-icon-map-Town",
	Fort:          "MW-icon-map-Fort",
	TelvanniTower: "MW-icon-map-Telvanni_Tower",
}

// Icon returns the icon asset name of a location type.
func (t LocationType) Icon() string {
	if name, ok := icons[t]; ok {
		return name
	}
	return "MW-icon-map-" + string(t)
}

// Marker is one named place on the map.
type Marker struct {
	Type    LocationType `json:"type"`
	Name    string       `json:"name"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	MinZoom int          `json:"min_zoom,omitempty"` // 0 means the global minimum
	MaxZoom int          `json:"max_zoom,omitempty"` // 0 means the global maximum
}

// Pos returns the marker's world position.
func (m Marker) Pos() geometry.Vec { return geometry.V(m.X, m.Y) }

// VisibleAt reports whether the marker shows at zoomLevel given the global
// bounds used for unset limits.
func (m Marker) VisibleAt(zoomLevel, globalMin, globalMax int) bool {
	lo, hi := m.MinZoom, m.MaxZoom
	if lo == 0 {
		lo = globalMin
	}
	if hi == 0 {
		hi = globalMax
	}
	return zoomLevel >= lo && zoomLevel <= hi
}

// QuestType is the faction or category a quest belongs to.
type QuestType string

const (
	QuestOther      QuestType = "other"
	QuestMagicGuild QuestType = "magic_guild"
)

// QuestItem is one quest drawn as a path of world points.
type QuestItem struct {
	Name  string         `json:"name"`
	Giver string         `json:"giver,omitempty"`
	Path  []geometry.Vec `json:"path"`
}

// Quest is a group of quest items sharing a type and display colour.
type Quest struct {
	Type  QuestType   `json:"type"`
	Color string      `json:"color"` // "#rrggbb"
	Items []QuestItem `json:"items"`
}

// RGBA parses the quest's hex colour, falling back to white.
func (q Quest) RGBA() color.RGBA {
	return ParseHexColor(q.Color)
}

// ParseHexColor converts "#rrggbb" or "rrggbb" to an opaque colour.
// Unparseable input yields white.
func ParseHexColor(hex string) color.RGBA {
	rgb := gcolor.HexToRgb(strings.TrimPrefix(hex, "#"))
	if len(rgb) != 3 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
}

// Data bundles the annotation tables a viewer draws.
type Data struct {
	Markers []Marker `json:"markers"`
	Quests  []Quest  `json:"quests"`
}

// Load reads annotation tables from a JSON file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world data %s: %w", path, err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing world data %s: %w", path, err)
	}
	for i, m := range d.Markers {
		if m.Name == "" || m.Type == "" {
			return nil, fmt.Errorf("world data %s: marker %d needs a name and a type", path, i)
		}
		if m.MinZoom != 0 && m.MaxZoom != 0 && m.MinZoom > m.MaxZoom {
			return nil, fmt.Errorf("world data %s: marker %q has min_zoom above max_zoom", path, m.Name)
		}
	}
	return &d, nil
}

// LoadOrDefault returns the tables in path, or the built-in tables when
// path is empty.
func LoadOrDefault(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Default returns the built-in tables.
func Default() *Data {
	return &Data{
		Markers: append([]Marker(nil), defaultMarkers...),
		Quests:  append([]Quest(nil), defaultQuests...),
	}
}

// Types returns the distinct location types used by the markers, in first
// appearance order.
func (d *Data) Types() []LocationType {
	seen := mapset.New[LocationType]()
	var out []LocationType
	for _, m := range d.Markers {
		if !seen.Has(m.Type) {
			seen.Put(m.Type)
			out = append(out, m.Type)
		}
	}
	return out
}
