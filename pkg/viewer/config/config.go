// Package config holds the host-supplied constants of the map viewer.
// Values come from built-in defaults, an optional JSON file and WORLDMAP_*
// environment variables (a .env file is honoured), in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Point is a screen-space pair used for offsets.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoomBand maps every zoom level from MinZoom up to the next band to one
// resolution level of the tile pyramid.
type ZoomBand struct {
	MinZoom int `json:"min_zoom"`
	Level   int `json:"level"`
}

// Config holds all viewer settings
type Config struct {
	// Assets
	AssetRoot   string `json:"asset_root"`    // Root of the tile pyramid on disk
	ImageExt    string `json:"image_ext"`     // Tile and icon file extension
	TileBaseURL string `json:"tile_base_url"` // When set, assets are fetched over HTTP instead

	// Pyramid and zoom
	BaseTileSize        float64    `json:"base_tile_size"`        // Source pixel size of one tile
	ResolutionLevels    []int      `json:"resolution_levels"`     // Grid sizes, ascending powers of two
	ZoomBands           []ZoomBand `json:"zoom_bands"`            // Zoom level -> resolution level
	ZoomStepBase        float64    `json:"zoom_step_base"`        // Scale change per zoom step
	MinZoomLevel        int        `json:"min_zoom_level"`        // Lowest zoom level
	MaxZoomLevel        int        `json:"max_zoom_level"`        // Highest zoom level
	InitialZoomLevel    int        `json:"initial_zoom_level"`    // Zoom level at start and on reset
	ZoomLevelOffset     int        `json:"zoom_level_offset"`     // Exponent shift in the camera zoom formula
	AnimationDurationMs int        `json:"animation_duration_ms"` // Length of one zoom transition
	DefaultOffset       Point      `json:"default_offset"`        // Camera offset at start and on reset
	PanStep             float64    `json:"pan_step"`              // Pixels per keyboard pan step

	// Overlays
	HoverMinZoom   int     `json:"hover_min_zoom"`   // Hover queries only at or above this zoom
	MarkerRadius   float64 `json:"marker_radius"`    // Quest vertex radius in world units
	QuestLineWidth float64 `json:"quest_line_width"` // Stroke width of quest paths in pixels
	IconSize       float64 `json:"icon_size"`        // Location icon edge in pixels
	LabelFontSize  float64 `json:"label_font_size"`  // Location label font size in pixels
	DataFile       string  `json:"data_file"`        // Optional JSON with locations and quests

	// Window and UI
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Language     string `json:"language"`
	LocalesDir   string `json:"locales_dir"`

	// Action id to key code overrides, e.g. {"pan_up": "i"}
	KeyBindings map[string]string `json:"key_bindings"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AssetRoot:           "assets",
		ImageExt:            "webp",
		BaseTileSize:        2048,
		ResolutionLevels:    []int{2, 4, 8, 16},
		ZoomBands:           []ZoomBand{{1, 2}, {4, 4}, {7, 8}, {9, 16}},
		ZoomStepBase:        1.5,
		MinZoomLevel:        1,
		MaxZoomLevel:        10,
		InitialZoomLevel:    1,
		ZoomLevelOffset:     4,
		AnimationDurationMs: 200,
		DefaultOffset:       Point{X: 0, Y: -120},
		PanStep:             64,
		HoverMinZoom:        5,
		MarkerRadius:        2,
		QuestLineWidth:      2,
		IconSize:            16,
		LabelFontSize:       16,
		WindowWidth:         1280,
		WindowHeight:        800,
		Language:            "en_GB",
		LocalesDir:          "locales",
	}
}

// Load builds a configuration from defaults, the JSON file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	// A missing .env is normal; only the process environment applies then.
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from WORLDMAP_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("WORLDMAP_ASSET_ROOT"); v != "" {
		c.AssetRoot = v
	}
	if v := getenv("WORLDMAP_IMAGE_EXT"); v != "" {
		c.ImageExt = v
	}
	if v := getenv("WORLDMAP_TILE_BASE_URL"); v != "" {
		c.TileBaseURL = v
	}
	if v := getenv("WORLDMAP_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := getenv("WORLDMAP_LANG"); v != "" {
		c.Language = v
	}
	if v := getenv("WORLDMAP_ZOOM"); v != "" {
		z, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORLDMAP_ZOOM=%q: %w", v, err)
		}
		c.InitialZoomLevel = z
	}
	return nil
}

// Validate checks the configuration for values the camera and renderers
// cannot work with.
func (c *Config) Validate() error {
	if c.BaseTileSize <= 0 {
		return fmt.Errorf("%w: base_tile_size must be positive, got %v", ErrInvalid, c.BaseTileSize)
	}
	if c.ZoomStepBase <= 1 {
		return fmt.Errorf("%w: zoom_step_base must be greater than 1, got %v", ErrInvalid, c.ZoomStepBase)
	}
	if c.MinZoomLevel > c.MaxZoomLevel {
		return fmt.Errorf("%w: min_zoom_level %d above max_zoom_level %d", ErrInvalid, c.MinZoomLevel, c.MaxZoomLevel)
	}
	if c.InitialZoomLevel < c.MinZoomLevel || c.InitialZoomLevel > c.MaxZoomLevel {
		return fmt.Errorf("%w: initial_zoom_level %d outside [%d, %d]", ErrInvalid, c.InitialZoomLevel, c.MinZoomLevel, c.MaxZoomLevel)
	}
	if c.AnimationDurationMs <= 0 {
		return fmt.Errorf("%w: animation_duration_ms must be positive, got %d", ErrInvalid, c.AnimationDurationMs)
	}
	if c.MarkerRadius < 0 || c.IconSize <= 0 || c.LabelFontSize <= 0 {
		return fmt.Errorf("%w: marker and label sizes must be positive", ErrInvalid)
	}
	if c.ImageExt == "" {
		return fmt.Errorf("%w: image_ext is empty", ErrInvalid)
	}

	if len(c.ResolutionLevels) == 0 {
		return fmt.Errorf("%w: no resolution levels", ErrInvalid)
	}
	levels := make(map[int]bool, len(c.ResolutionLevels))
	for i, l := range c.ResolutionLevels {
		if l <= 0 || l&(l-1) != 0 {
			return fmt.Errorf("%w: resolution level %d is not a power of two", ErrInvalid, l)
		}
		if i > 0 && l <= c.ResolutionLevels[i-1] {
			return fmt.Errorf("%w: resolution levels must ascend, got %v", ErrInvalid, c.ResolutionLevels)
		}
		levels[l] = true
	}

	if len(c.ZoomBands) == 0 {
		return fmt.Errorf("%w: no zoom bands", ErrInvalid)
	}
	bands := c.sortedBands()
	if bands[0].MinZoom > c.MinZoomLevel {
		return fmt.Errorf("%w: zoom bands start at %d, above min_zoom_level %d", ErrInvalid, bands[0].MinZoom, c.MinZoomLevel)
	}
	for i, b := range bands {
		if !levels[b.Level] {
			return fmt.Errorf("%w: zoom band at %d uses unknown resolution level %d", ErrInvalid, b.MinZoom, b.Level)
		}
		if i > 0 {
			if b.MinZoom == bands[i-1].MinZoom {
				return fmt.Errorf("%w: duplicate zoom band at %d", ErrInvalid, b.MinZoom)
			}
			if b.Level < bands[i-1].Level {
				return fmt.Errorf("%w: zoom band at %d maps to a coarser level than the band below it", ErrInvalid, b.MinZoom)
			}
		}
	}
	return nil
}

// ResolutionFor returns the resolution level for a zoom level.
func (c *Config) ResolutionFor(zoomLevel int) int {
	bands := c.sortedBands()
	level := bands[0].Level
	for _, b := range bands {
		if zoomLevel >= b.MinZoom {
			level = b.Level
		}
	}
	return level
}

// AnimationDuration returns AnimationDurationMs as a time.Duration.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationDurationMs) * time.Millisecond
}

func (c *Config) sortedBands() []ZoomBand {
	bands := append([]ZoomBand(nil), c.ZoomBands...)
	sort.Slice(bands, func(i, j int) bool { return bands[i].MinZoom < bands[j].MinZoom })
	return bands
}
