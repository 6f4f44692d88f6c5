package tiles

import (
	"context"
	"path"

	"worldmap/pkg/viewer/assets"
)

// Icon is the load handle of one location-type icon.
type Icon = assets.Handle[string]

// IconCache loads each named icon once from {root}/icons/{name}.{ext}.
type IconCache struct {
	root   string
	ext    string
	loader *assets.Loader[string]
}

// NewIconCache creates an empty icon cache.
func NewIconCache(f assets.Fetcher, root, ext string) *IconCache {
	return &IconCache{
		root:   root,
		ext:    ext,
		loader: assets.NewLoader[string]("icon", f),
	}
}

// IconPath returns the asset path of a named icon.
func IconPath(root, name, ext string) string {
	return path.Join(root, "icons", name+"."+ext)
}

// Request returns the icon's handle, fetching it on first use.
func (c *IconCache) Request(name string) *Icon {
	return c.loader.Request(name, IconPath(c.root, name, c.ext), nil)
}

// Poll applies finished icon loads.
func (c *IconCache) Poll() int { return c.loader.Poll() }

// WaitIdle blocks until no icon load is in flight.
func (c *IconCache) WaitIdle(ctx context.Context) error { return c.loader.WaitIdle(ctx) }

// InFlight returns the number of outstanding icon loads.
func (c *IconCache) InFlight() int { return c.loader.InFlight() }

// Pending calls fn for every icon whose load is outstanding.
func (c *IconCache) Pending(fn func(string)) { c.loader.Pending(fn) }

// Close abandons outstanding loads.
func (c *IconCache) Close() { c.loader.Close() }
