package ebiten

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/mapview"
	"worldmap/pkg/viewer/world"
)

// New creates a window renderer for a map viewer loading assets through f.
func New(cfg *config.Config, f assets.Fetcher, data *world.Data) *EbitenRenderer {
	return &EbitenRenderer{
		cfg:            cfg,
		view:           mapview.New(cfg, f, data, cfg.WindowWidth, cfg.WindowHeight),
		windowWidth:    cfg.WindowWidth,
		windowHeight:   cfg.WindowHeight,
		images:         make(map[image.Image]*ebiten.Image),
		keyRepeatState: make(map[string]keyRepeatInfo),
		hudVisible:     true,
	}
}

// Init loads fonts and configures the window.
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// The map canvas is blitted over the whole screen every frame.
	ebiten.SetScreenClearedEveryFrame(false)
	return nil
}

// Run starts the Ebiten game loop and blocks until the window closes.
func (e *EbitenRenderer) Run() error {
	log.Printf("Opening map window (%dx%d)", e.windowWidth, e.windowHeight)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Close abandons outstanding loads and frees GPU images.
func (e *EbitenRenderer) Close() {
	e.view.Close()
	e.imagesMutex.Lock()
	defer e.imagesMutex.Unlock()
	for k, img := range e.images {
		img.Deallocate()
		delete(e.images, k)
	}
}

// View returns the map viewer driven by the window.
func (e *EbitenRenderer) View() *mapview.MapView { return e.view }
