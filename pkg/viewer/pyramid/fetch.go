package pyramid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/tiles"
)

// DefaultConcurrency bounds parallel downloads when none is given.
const DefaultConcurrency = 4

// FetchOptions describes a level download.
type FetchOptions struct {
	// URLTemplate is expanded per tile; {level}, {col} and {row} are replaced.
	URLTemplate string
	Level       int
	Root        string // local asset root
	Ext         string // extension of the written files
	Concurrency int
	Client      *http.Client

	// Progress, if set, is called after each tile from the download
	// goroutines.
	Progress func(done, total int, k tiles.Key)
}

// ExpandURL fills a tile URL template for k.
func ExpandURL(tmpl string, k tiles.Key) string {
	return strings.NewReplacer(
		"{level}", strconv.Itoa(k.Level),
		"{col}", strconv.Itoa(k.Col),
		"{row}", strconv.Itoa(k.Row),
	).Replace(tmpl)
}

// FetchLevel downloads every tile of a level into the asset layout below
// opts.Root, writing the response bodies unchanged. The first failure
// cancels the remaining downloads.
func FetchLevel(ctx context.Context, opts FetchOptions) error {
	if opts.Level <= 0 {
		return fmt.Errorf("fetch: level %d must be positive", opts.Level)
	}
	if opts.URLTemplate == "" {
		return fmt.Errorf("fetch: empty URL template")
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	total := opts.Level * opts.Level
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for col := 0; col < opts.Level; col++ {
		for row := 0; row < opts.Level; row++ {
			k := tiles.Key{Level: opts.Level, Col: col, Row: row}
			g.Go(func() error {
				if err := fetchTile(ctx, opts, k); err != nil {
					return err
				}
				if opts.Progress != nil {
					opts.Progress(int(done.Add(1)), total, k)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

func fetchTile(ctx context.Context, opts FetchOptions, k tiles.Key) error {
	body, err := assets.Get(ctx, opts.Client, ExpandURL(opts.URLTemplate, k))
	if err != nil {
		return fmt.Errorf("tile %v: %w", k, err)
	}
	defer body.Close()

	p := filepath.FromSlash(tiles.Path(opts.Root, k, opts.Ext))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		// A partial file would later decode as a corrupt tile.
		os.Remove(p)
		return fmt.Errorf("tile %v: writing %s: %w", k, p, err)
	}
	return f.Close()
}
