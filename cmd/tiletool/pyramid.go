package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"worldmap/pkg/engine/console"
	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/devtools"
	"worldmap/pkg/viewer/pyramid"
	"worldmap/pkg/viewer/tiles"
)

func runFetch(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	tmpl := fs.String("url", "", "tile URL template with {level}, {col} and {row}")
	level := fs.Int("level", 4, "resolution level to download")
	jobs := fs.Int("jobs", pyramid.DefaultConcurrency, "parallel downloads")
	fs.Parse(args)

	con.Printf("GT{FETCHING} COUNT{%d} -> PATH{%s}", (*level)*(*level), cfg.AssetRoot)
	err := pyramid.FetchLevel(ctx, pyramid.FetchOptions{
		URLTemplate: *tmpl,
		Level:       *level,
		Root:        cfg.AssetRoot,
		Ext:         cfg.ImageExt,
		Concurrency: *jobs,
		Progress: func(done, total int, k tiles.Key) {
			con.Progress(done, total, k.String())
		},
	})
	if err != nil {
		return err
	}
	con.Printf("GT{DONE}")
	return nil
}

// parseLevels reads a comma-separated list of grid sizes.
func parseLevels(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid level %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func runSplit(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	src := fs.String("src", "", "source image")
	levelList := fs.String("levels", "", "comma-separated levels (default: the configured levels)")
	size := fs.Int("size", int(cfg.BaseTileSize), "output tile size in pixels")
	fs.Parse(args)

	levels := cfg.ResolutionLevels
	if *levelList != "" {
		var err error
		if levels, err = parseLevels(*levelList); err != nil {
			return err
		}
	}

	f, err := os.Open(*src)
	if err != nil {
		return err
	}
	img, err := assets.Decode(f, *src)
	f.Close()
	if err != nil {
		return err
	}

	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return err
		}
		grid, err := pyramid.SplitLevel(img, level, *size)
		if err != nil {
			return err
		}
		written, err := pyramid.WriteLevel(cfg.AssetRoot, level, grid)
		if err != nil {
			return err
		}
		con.Printf("level COUNT{%d}: wrote COUNT{%d} tiles as png", level, len(written))
	}
	if cfg.ImageExt != "png" {
		con.Printf("SUBTLE{set image_ext to png to view the split tiles}")
	}
	return nil
}

func runJoin(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	level := fs.Int("level", 4, "resolution level to join")
	size := fs.Int("size", 512, "pixel size of each tile in the output")
	out := fs.String("out", "", "output PNG (default joined-<level>.png)")
	fs.Parse(args)

	path := *out
	if path == "" {
		path = fmt.Sprintf("joined-%d.png", *level)
	}
	img, err := pyramid.JoinLevel(ctx, assets.NewFetcher(cfg.TileBaseURL, "."), cfg.AssetRoot, cfg.ImageExt, *level, *size)
	if err != nil {
		return err
	}
	if err := devtools.WritePNG(path, img); err != nil {
		return err
	}
	con.Printf("GT{WROTE} PATH{%s}", path)
	return nil
}
