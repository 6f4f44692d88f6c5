package render

import (
	"math"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/camera"
	"worldmap/pkg/viewer/tiles"
)

// TileRange is an inclusive range of tile columns and rows. It is empty when
// a max is below its min.
type TileRange struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// Empty reports whether the range holds no tile.
func (r TileRange) Empty() bool {
	return r.MaxCol < r.MinCol || r.MaxRow < r.MinRow
}

// Count returns the number of tiles in the range.
func (r TileRange) Count() int {
	if r.Empty() {
		return 0
	}
	return (r.MaxCol - r.MinCol + 1) * (r.MaxRow - r.MinRow + 1)
}

// Contains reports whether the tile at col, row is in the range.
func (r TileRange) Contains(col, row int) bool {
	return col >= r.MinCol && col <= r.MaxCol && row >= r.MinRow && row <= r.MaxRow
}

// Each calls fn for every tile in the range, column by column.
func (r TileRange) Each(fn func(col, row int)) {
	for col := r.MinCol; col <= r.MaxCol; col++ {
		for row := r.MinRow; row <= r.MaxRow; row++ {
			fn(col, row)
		}
	}
}

// VisibleRange returns the tiles of v's resolution level that intersect the
// viewport, clamped to the level's grid.
func VisibleRange(v camera.View) TileRange {
	size := v.TileSize()
	if size <= 0 || v.Resolution <= 0 {
		return TileRange{MinCol: 0, MinRow: 0, MaxCol: -1, MaxRow: -1}
	}
	last := v.Resolution - 1
	return TileRange{
		MinCol: max(floorDiv(0-v.Offset.X, size), 0),
		MinRow: max(floorDiv(0-v.Offset.Y, size), 0),
		MaxCol: min(floorDiv(float64(v.Width)-v.Offset.X, size), last),
		MaxRow: min(floorDiv(float64(v.Height)-v.Offset.Y, size), last),
	}
}

func floorDiv(a, b float64) int {
	q := math.Floor(a / b)
	switch {
	case q > math.MaxInt32:
		return math.MaxInt32
	case q < math.MinInt32:
		return math.MinInt32
	}
	return int(q)
}

// TileRenderer draws the visible part of the tile pyramid.
//
// Tiles that are not loaded yet are skipped; their completion callback draws
// them later at the placement of the most recent Draw, so a tile arriving
// after the camera moved lands where it belongs now.
type TileRenderer struct {
	cache *tiles.Cache

	target Surface
	view   camera.View
	drawn  TileRange
}

// NewTileRenderer creates a renderer drawing tiles from cache.
func NewTileRenderer(cache *tiles.Cache) *TileRenderer {
	return &TileRenderer{cache: cache, drawn: TileRange{MaxCol: -1, MaxRow: -1}}
}

// Draw requests every visible tile and draws those already loaded.
// It returns the visible range.
func (r *TileRenderer) Draw(s Surface, v camera.View) TileRange {
	r.target, r.view = s, v
	r.drawn = VisibleRange(v)
	r.drawn.Each(func(col, row int) {
		t, err := r.cache.Request(tiles.Key{Level: v.Resolution, Col: col, Row: row}, r.onLoad)
		if err != nil {
			return
		}
		r.drawTile(s, v, t)
	})
	return r.drawn
}

func (r *TileRenderer) onLoad(t *tiles.Tile) {
	if r.target == nil || t.Key.Level != r.view.Resolution || !r.drawn.Contains(t.Key.Col, t.Key.Row) {
		return
	}
	r.drawTile(r.target, r.view, t)
}

func (r *TileRenderer) drawTile(s Surface, v camera.View, t *tiles.Tile) {
	size := v.TileSize()
	x := v.Offset.X + float64(t.Key.Col)*size
	y := v.Offset.Y + float64(t.Key.Row)*size
	switch t.Status() {
	case assets.StatusLoaded:
		s.DrawImage(t.Image(), x, y, size, size)
	case assets.StatusFailed:
		s.FillRect(x, y, size, size, ColorPlaceholder)
	}
}
