package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts prepares the font sources used by labels and the HUD.
func (e *EbitenRenderer) loadFonts() error {
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("loading sans font: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("loading mono font: %w", err)
	}
	e.sansFontSource = sans
	e.monoFontSource = mono
	e.invalidateFontCache()
	return nil
}

// getSansFontFace returns a cached sans-serif face of the given pixel size
func (e *EbitenRenderer) getSansFontFace(size float64) *text.GoTextFace {
	if face, ok := e.cachedSansFaces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source: e.sansFontSource,
		Size:   size,
	}
	e.cachedSansFaces[size] = face
	return face
}

// getMonoFontFace returns a cached monospace face for the HUD
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil {
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   hudFontSize,
		}
	}
	return e.cachedMonoFace
}

// invalidateFontCache clears cached font faces
func (e *EbitenRenderer) invalidateFontCache() {
	e.cachedSansFaces = make(map[float64]*text.GoTextFace)
	e.cachedMonoFace = nil
}
