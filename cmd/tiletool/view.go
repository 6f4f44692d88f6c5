package main

import (
	"context"
	"flag"
	"math"
	"os"

	"worldmap/pkg/engine/console"
	"worldmap/pkg/engine/geometry"
	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/devtools"
	"worldmap/pkg/viewer/mapview"
	"worldmap/pkg/viewer/world"
)

// viewFlags are shared by shot and dump.
type viewFlags struct {
	x, y          *float64
	zoom          *int
	width, height *int
}

func addViewFlags(fs *flag.FlagSet, cfg *config.Config) viewFlags {
	return viewFlags{
		x:      fs.Float64("x", math.NaN(), "world x to centre on (default: the initial view)"),
		y:      fs.Float64("y", math.NaN(), "world y to centre on"),
		zoom:   fs.Int("zoom", cfg.InitialZoomLevel, "zoom level"),
		width:  fs.Int("width", cfg.WindowWidth, "viewport width"),
		height: fs.Int("height", cfg.WindowHeight, "viewport height"),
	}
}

// openView builds a viewer and settles it on the requested camera.
func openView(cfg *config.Config, vf viewFlags) (*mapview.MapView, error) {
	data, err := world.LoadOrDefault(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	m := mapview.New(cfg, assets.NewFetcher(cfg.TileBaseURL, "."), data, *vf.width, *vf.height)
	if math.IsNaN(*vf.x) || math.IsNaN(*vf.y) {
		cfg.InitialZoomLevel = *vf.zoom
		m.Camera().Reset()
	} else {
		m.CenterOn(geometry.V(*vf.x, *vf.y), *vf.zoom)
	}
	return m, nil
}

func runShot(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error {
	fs := flag.NewFlagSet("shot", flag.ExitOnError)
	vf := addViewFlags(fs, cfg)
	out := fs.String("out", "", "output PNG (default: timestamped screenshot)")
	fs.Parse(args)

	m, err := openView(cfg, vf)
	if err != nil {
		return err
	}
	defer m.Close()

	img, err := devtools.Capture(ctx, m)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path, err = devtools.SaveScreenshot(img, ".")
	} else {
		err = devtools.WritePNG(path, img)
	}
	if err != nil {
		return err
	}
	st := m.Status()
	con.Printf("GT{WROTE} PATH{%s} (zoom COUNT{%d}, COUNT{%d} tiles, COUNT{%d} failed)", path, st.ZoomLevel, st.Loaded, st.Failed)
	return nil
}

func runDump(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	vf := addViewFlags(fs, cfg)
	fs.Parse(args)

	m, err := openView(cfg, vf)
	if err != nil {
		return err
	}
	defer m.Close()

	if _, err := devtools.Capture(ctx, m); err != nil {
		return err
	}
	devtools.DumpView(os.Stdout, m)
	return nil
}
