package ebiten

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/mapview"
)

// keyRepeatInfo tracks the repeat state for a key or button
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// EbitenRenderer runs a MapView inside an Ebiten window.
type EbitenRenderer struct {
	cfg  *config.Config
	view *mapview.MapView

	// Window dimensions
	windowWidth  int
	windowHeight int

	// Persistent map canvas. Tiles that finish loading are drawn onto it
	// between full redraws, so it is never cleared by Ebiten.
	canvas *surface

	// Decoded images converted to GPU images, keyed by the decoded image.
	images      map[image.Image]*ebiten.Image
	imagesMutex sync.Mutex

	// Font sources for text rendering
	sansFontSource *text.GoTextFaceSource // Labels and callouts
	monoFontSource *text.GoTextFaceSource // HUD numbers

	// Cached font faces keyed by pixel size
	cachedSansFaces map[float64]*text.GoTextFace
	cachedMonoFace  *text.GoTextFace

	// Pointer state for edge detection
	lastCursorX, lastCursorY int
	pointerDown              bool

	// Key repeat state tracking
	// Maps key/button codes to their repeat state
	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	// Reused each frame for the keyboard scan
	pressedKeys []ebiten.Key

	hudVisible bool

	// Flag to track if we've logged window opening
	windowOpenedLogged bool

	// Set by the quit intent; Update then ends the game loop.
	quitRequested bool
}
