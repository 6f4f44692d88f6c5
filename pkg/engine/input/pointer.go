// Package input turns device events into viewer intents: keyboard and gamepad
// codes go through layered bindings, pointer events carry raw numbers.
package input

import "fmt"

// PointerKind identifies a pointer or viewport event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	Wheel
	Resize
)

// PointerEvent is a host-neutral pointer or viewport event. Only the fields
// relevant to Kind are set.
type PointerEvent struct {
	Kind  PointerKind
	X, Y  float64 // pointer position in viewport pixels
	Delta float64 // wheel: vertical scroll amount, positive scrolls down
	W, H  int     // resize: new viewport size
}

func (e PointerEvent) String() string {
	switch e.Kind {
	case PointerDown:
		return fmt.Sprintf("down(%.0f,%.0f)", e.X, e.Y)
	case PointerMove:
		return fmt.Sprintf("move(%.0f,%.0f)", e.X, e.Y)
	case PointerUp:
		return "up"
	case Wheel:
		return fmt.Sprintf("wheel(%.0f,%.0f,%+.0f)", e.X, e.Y, e.Delta)
	case Resize:
		return fmt.Sprintf("resize(%dx%d)", e.W, e.H)
	default:
		return "unknown"
	}
}

// ZoomDirection converts a wheel delta to a zoom step: scrolling up zooms
// in (+1), scrolling down zooms out (-1), zero does nothing.
func ZoomDirection(delta float64) int {
	switch {
	case delta < 0:
		return 1
	case delta > 0:
		return -1
	default:
		return 0
	}
}
