package input

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceGamepad
)

// Action represents a high‑level intent in the viewer.
type Action int

const (
	ActionNone Action = iota

	// Camera
	ActionZoomIn
	ActionZoomOut
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionResetView

	// Meta / UI
	ActionToggleHUD
	ActionScreenshot
	ActionDumpView // Write a text report of the current view (F9)
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "gamepad_dpad_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Key repeat is handled by the backend before events reach this layer.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Panning (arrows, WASD, Vim)
	"arrow_up":    ActionPanUp,
	"w":           ActionPanUp,
	"k":           ActionPanUp,
	"arrow_down":  ActionPanDown,
	"s":           ActionPanDown,
	"j":           ActionPanDown,
	"arrow_left":  ActionPanLeft,
	"a":           ActionPanLeft,
	"h":           ActionPanLeft,
	"arrow_right": ActionPanRight,
	"d":           ActionPanRight,
	"l":           ActionPanRight,

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,

	"0":         ActionResetView,
	"home":      ActionResetView,
	"tab":       ActionToggleHUD,
	"f12":       ActionScreenshot,
	"p":         ActionScreenshot,
	"f9":        ActionDumpView,
	"q":         ActionQuit,
	"escape":    ActionQuit,
	"gamepad_b": ActionQuit,

	// Controller/gamepad specific bindings
	"gamepad_dpad_up":    ActionPanUp,
	"gamepad_dpad_down":  ActionPanDown,
	"gamepad_dpad_left":  ActionPanLeft,
	"gamepad_dpad_right": ActionPanRight,
	"gamepad_rb":         ActionZoomIn,
	"gamepad_lb":         ActionZoomOut,
	"gamepad_start":      ActionResetView,

	"mouse_middle": ActionResetView,
}

// actionIDs names the rebindable actions in configuration files.
var actionIDs = map[string]Action{
	"zoom_in":    ActionZoomIn,
	"zoom_out":   ActionZoomOut,
	"pan_up":     ActionPanUp,
	"pan_down":   ActionPanDown,
	"pan_left":   ActionPanLeft,
	"pan_right":  ActionPanRight,
	"reset_view": ActionResetView,
	"toggle_hud": ActionToggleHUD,
	"screenshot": ActionScreenshot,
	"dump_view":  ActionDumpView,
	"quit":       ActionQuit,
}

// reserved codes keep their bindings and cannot be rebound.
var reserved = map[string]bool{
	"arrow_up": true, "arrow_down": true, "arrow_left": true, "arrow_right": true,
	"=": true, "+": true, "-": true, "escape": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionPanUp:
		return "Pan Up"
	case ActionPanDown:
		return "Pan Down"
	case ActionPanLeft:
		return "Pan Left"
	case ActionPanRight:
		return "Pan Right"
	case ActionResetView:
		return "Reset View"
	case ActionToggleHUD:
		return "Toggle HUD"
	case ActionScreenshot:
		return "Screenshot"
	case ActionDumpView:
		return "Dump View"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help output doesn't shuffle between runs.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code. Reserved codes are never removed or rebound.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ApplyBindings rebinds each action named in overrides (action id to code,
// e.g. "pan_up": "i") with SetSingleBinding.
func ApplyBindings(overrides map[string]string) error {
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		act, ok := actionIDs[id]
		if !ok {
			return fmt.Errorf("unknown action %q in key bindings", id)
		}
		SetSingleBinding(act, overrides[id])
	}
	return nil
}

// DescribeBindings lists the current bindings, one "Action: codes" line per
// bound action in action order.
func DescribeBindings() []string {
	byAction := GetBindingsByAction()
	acts := make([]Action, 0, len(byAction))
	for act := range byAction {
		acts = append(acts, act)
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i] < acts[j] })

	lines := make([]string, 0, len(acts))
	for _, act := range acts {
		lines = append(lines, fmt.Sprintf("%-12s %s", ActionName(act)+":", strings.Join(byAction[act], ", ")))
	}
	return lines
}
