// Package renderer defines the host interface for map viewer backends.
package renderer

// Renderer hosts a map viewer and drives its render loop.
// Implementations can include a window (Ebiten) or a headless capture.
type Renderer interface {
	// Init loads fonts and prepares the output (window, files, etc.)
	Init() error

	// Run blocks until the viewer is done.
	Run() error

	// Close abandons outstanding loads and frees resources.
	Close()
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Run initializes and runs the current renderer, closing it afterwards.
func Run() error {
	if Current == nil {
		return nil
	}
	defer Current.Close()
	if err := Current.Init(); err != nil {
		return err
	}
	return Current.Run()
}
