package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestResolutionFor_DefaultBands(t *testing.T) {
	cfg := Default()
	want := map[int]int{1: 2, 2: 2, 3: 2, 4: 4, 5: 4, 6: 4, 7: 8, 8: 8, 9: 16, 10: 16}
	for zoom, level := range want {
		if got := cfg.ResolutionFor(zoom); got != level {
			t.Errorf("ResolutionFor(%d) = %d, want %d", zoom, got, level)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"non power of two level", func(c *Config) { c.ResolutionLevels = []int{2, 3} }},
		{"descending levels", func(c *Config) { c.ResolutionLevels = []int{4, 2} }},
		{"band with unknown level", func(c *Config) { c.ZoomBands = []ZoomBand{{1, 2}, {5, 32}} }},
		{"bands start too high", func(c *Config) { c.ZoomBands = []ZoomBand{{3, 2}} }},
		{"coarser band above finer", func(c *Config) { c.ZoomBands = []ZoomBand{{1, 4}, {5, 2}} }},
		{"step base not above one", func(c *Config) { c.ZoomStepBase = 1 }},
		{"inverted zoom bounds", func(c *Config) { c.MinZoomLevel, c.MaxZoomLevel = 5, 2 }},
		{"initial zoom out of range", func(c *Config) { c.InitialZoomLevel = 42 }},
		{"zero duration", func(c *Config) { c.AnimationDurationMs = 0 }},
		{"zero tile size", func(c *Config) { c.BaseTileSize = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.json")
	body := `{"asset_root": "tiles", "image_ext": "png", "max_zoom_level": 8, "key_bindings": {"pan_up": "i"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if cfg.AssetRoot != "tiles" || cfg.ImageExt != "png" || cfg.MaxZoomLevel != 8 {
		t.Errorf("Load overrides = %q %q %d, want tiles png 8", cfg.AssetRoot, cfg.ImageExt, cfg.MaxZoomLevel)
	}
	if cfg.BaseTileSize != 2048 {
		t.Errorf("BaseTileSize = %v, want default 2048", cfg.BaseTileSize)
	}
	if cfg.KeyBindings["pan_up"] != "i" {
		t.Errorf("KeyBindings = %v, want pan_up bound to i", cfg.KeyBindings)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WORLDMAP_ASSET_ROOT":    "/srv/tiles",
		"WORLDMAP_TILE_BASE_URL": "http://localhost:8080",
		"WORLDMAP_ZOOM":          "3",
	}
	cfg := Default()
	if err := cfg.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv error = %v", err)
	}
	if cfg.AssetRoot != "/srv/tiles" || cfg.TileBaseURL != "http://localhost:8080" || cfg.InitialZoomLevel != 3 {
		t.Errorf("applyEnv result = %+v", cfg)
	}

	bad := Default()
	if err := bad.applyEnv(func(k string) string {
		if k == "WORLDMAP_ZOOM" {
			return "three"
		}
		return ""
	}); err == nil {
		t.Error("applyEnv(WORLDMAP_ZOOM=three) error = nil, want error")
	}
}
