// Package tiles keeps the tile pyramid's image-load handles: one lazily
// filled grid per resolution level, each tile fetched at most once.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"

	"worldmap/pkg/viewer/assets"
)

// ErrOutOfGrid is returned for coordinates outside a level's grid.
var ErrOutOfGrid = errors.New("tile outside grid")

// Key addresses one tile: column and row within a level x level grid.
type Key struct {
	Level int
	Col   int
	Row   int
}

// Valid reports whether the key lies inside its level's grid.
func (k Key) Valid() bool {
	return k.Level > 0 && k.Col >= 0 && k.Row >= 0 && k.Col < k.Level && k.Row < k.Level
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d,%d", k.Level, k.Col, k.Row)
}

// Path returns the asset path of a tile: {root}/{level}/image-{col}-{row}.{ext}.
func Path(root string, k Key, ext string) string {
	return path.Join(root, strconv.Itoa(k.Level), fmt.Sprintf("image-%d-%d.%s", k.Col, k.Row, ext))
}

// Tile is the load handle of one tile.
type Tile = assets.Handle[Key]

// Cache owns every tile handle of one viewer.
type Cache struct {
	root   string
	ext    string
	loader *assets.Loader[Key]
	grids  map[int][][]*Tile
}

// NewCache creates an empty cache fetching tiles below root with extension ext.
func NewCache(f assets.Fetcher, root, ext string) *Cache {
	return &Cache{
		root:   root,
		ext:    ext,
		loader: assets.NewLoader[Key]("tile", f),
		grids:  make(map[int][][]*Tile),
	}
}

// Request returns the tile's handle, issuing its one and only fetch on the
// first call. onLoad, when non-nil, becomes the tile's completion callback.
func (c *Cache) Request(k Key, onLoad func(*Tile)) (*Tile, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfGrid, k)
	}
	grid := c.grid(k.Level)
	t := c.loader.Request(k, Path(c.root, k, c.ext), onLoad)
	grid[k.Col][k.Row] = t
	return t, nil
}

// Lookup returns the tile's handle, or nil if it was never requested.
func (c *Cache) Lookup(k Key) *Tile {
	if !k.Valid() {
		return nil
	}
	grid, ok := c.grids[k.Level]
	if !ok {
		return nil
	}
	return grid[k.Col][k.Row]
}

// Status returns the tile's state; never-requested tiles are unrequested.
func (c *Cache) Status(k Key) assets.Status {
	if t := c.Lookup(k); t != nil {
		return t.Status()
	}
	return assets.StatusUnrequested
}

func (c *Cache) grid(level int) [][]*Tile {
	grid, ok := c.grids[level]
	if !ok {
		grid = make([][]*Tile, level)
		for col := range grid {
			grid[col] = make([]*Tile, level)
		}
		c.grids[level] = grid
	}
	return grid
}

// Poll applies finished loads and runs their callbacks. Call it from the
// render loop once per tick.
func (c *Cache) Poll() int { return c.loader.Poll() }

// WaitIdle blocks until no tile load is in flight.
func (c *Cache) WaitIdle(ctx context.Context) error { return c.loader.WaitIdle(ctx) }

// InFlight returns the number of outstanding tile loads.
func (c *Cache) InFlight() int { return c.loader.InFlight() }

// Pending calls fn for every tile whose load is outstanding.
func (c *Cache) Pending(fn func(Key)) { c.loader.Pending(fn) }

// OnInFlightChange subscribes fn to changes of the in-flight counter.
func (c *Cache) OnInFlightChange(fn func(int)) { c.loader.OnInFlightChange(fn) }

// Stats reports requested, loaded and failed tile counts.
func (c *Cache) Stats() (requested, loaded, failed int) { return c.loader.Stats() }

// Levels returns how many tiles of each level have been requested.
func (c *Cache) Levels() map[int]int {
	out := make(map[int]int, len(c.grids))
	for level, grid := range c.grids {
		for _, col := range grid {
			for _, t := range col {
				if t != nil {
					out[level]++
				}
			}
		}
	}
	return out
}

// Close abandons outstanding loads.
func (c *Cache) Close() { c.loader.Close() }
