package ebiten

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "worldmap/pkg/engine/input"
	"worldmap/pkg/viewer/devtools"
)

// namedKeys lists keys whose binding code is not their lower-cased name.
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyArrowUp:        "arrow_up",
	ebiten.KeyArrowDown:      "arrow_down",
	ebiten.KeyArrowLeft:      "arrow_left",
	ebiten.KeyArrowRight:     "arrow_right",
	ebiten.KeyEqual:          "=",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadAdd:      "numpad_add",
	ebiten.KeyNumpadSubtract: "numpad_subtract",
	ebiten.KeyHome:           "home",
	ebiten.KeyTab:            "tab",
	ebiten.KeyEscape:         "escape",
}

// bindingCode returns the code a key produces in the binding table: its
// namedKeys entry, "0".."9" for digits, or the lower-cased name of a letter
// or function key. Other keys produce "".
func bindingCode(k ebiten.Key) string {
	if code, ok := namedKeys[k]; ok {
		return code
	}
	name := k.String()
	switch {
	case len(name) == 1:
		return strings.ToLower(name)
	case strings.HasPrefix(name, "Digit"):
		return strings.TrimPrefix(name, "Digit")
	case len(name) <= 3 && name[0] == 'F':
		return strings.ToLower(name)
	}
	return ""
}

// repeats reports whether holding a key bound to a repeats the action.
func repeats(a engineinput.Action) bool {
	switch a {
	case engineinput.ActionPanUp, engineinput.ActionPanDown, engineinput.ActionPanLeft, engineinput.ActionPanRight:
		return true
	}
	return false
}

// Update handles input and advances the map (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	now := time.Now()
	e.ensureCanvas(e.windowWidth, e.windowHeight)
	if e.canvas == nil {
		return nil
	}

	e.checkPointer(now)

	// Check for gamepad input first, then fall back to keyboard (raw layer)
	intent := e.checkGamepadInput(now)
	if intent.Action == engineinput.ActionNone {
		intent = e.checkInput(now)
	}
	if intent.Action == engineinput.ActionNone {
		intent = e.checkMouseButtons()
	}
	e.applyIntent(intent, now)
	if e.quitRequested {
		return ebiten.Termination
	}

	// Tiles and overlays are drawn here rather than in Draw: completion
	// callbacks fire inside Frame and paint straight onto the canvas.
	e.view.Frame(e.canvas, now)
	return nil
}

// applyIntent routes an intent to the view or handles it locally.
func (e *EbitenRenderer) applyIntent(in engineinput.Intent, now time.Time) {
	if in.Action == engineinput.ActionNone || e.view.HandleIntent(in, now) {
		return
	}
	switch in.Action {
	case engineinput.ActionToggleHUD:
		e.hudVisible = !e.hudVisible
	case engineinput.ActionScreenshot:
		e.saveScreenshot()
	case engineinput.ActionDumpView:
		path, err := devtools.WriteDumpFile(e.view, ".")
		if err != nil {
			log.Printf("Warning: could not dump view: %v", err)
			return
		}
		log.Printf("View dumped to %s", path)
	case engineinput.ActionQuit:
		e.quitRequested = true
	}
}

// saveScreenshot writes the current map canvas to a PNG file.
func (e *EbitenRenderer) saveScreenshot() {
	w, h := e.canvas.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	e.canvas.img.ReadPixels(img.Pix)
	path, err := devtools.SaveScreenshot(img, ".")
	if err != nil {
		log.Printf("Warning: could not save screenshot: %v", err)
		return
	}
	log.Printf("Screenshot saved to %s", path)
}

// checkPointer turns mouse state changes into pointer events for the view.
func (e *EbitenRenderer) checkPointer(now time.Time) {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.pointerDown = true
		e.view.HandleEvent(engineinput.PointerEvent{Kind: engineinput.PointerDown, X: fx, Y: fy}, now)
	}
	if x != e.lastCursorX || y != e.lastCursorY {
		e.lastCursorX, e.lastCursorY = x, y
		e.view.HandleEvent(engineinput.PointerEvent{Kind: engineinput.PointerMove, X: fx, Y: fy}, now)
	}
	if e.pointerDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.pointerDown = false
		e.view.HandleEvent(engineinput.PointerEvent{Kind: engineinput.PointerUp, X: fx, Y: fy}, now)
	}

	// Ebiten reports wheel-up as positive; the view expects positive to zoom out.
	if _, dy := ebiten.Wheel(); dy != 0 {
		e.view.HandleEvent(engineinput.PointerEvent{Kind: engineinput.Wheel, X: fx, Y: fy, Delta: -dy}, now)
	}
}

// checkMouseButtons maps mouse buttons other than the drag button to intents.
func (e *EbitenRenderer) checkMouseButtons() engineinput.Intent {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		return intentFor(engineinput.DeviceMouse, "mouse_middle")
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
// Returns true if the key should trigger, false otherwise
func (e *EbitenRenderer) shouldRepeatKey(pressed bool, code string, now time.Time) bool {
	ms := now.UnixMilli()

	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	state, exists := e.keyRepeatState[code]
	if !pressed {
		// Key released - clean up state
		delete(e.keyRepeatState, code)
		return false
	}
	if !exists {
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: ms, lastRepeat: ms}
		return true
	}
	if ms-state.firstPressed >= keyRepeatInitialDelay && ms-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = ms
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

func intentFor(device engineinput.Device, code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device: device,
		Code:   code,
	}))
}

// checkGamepadInput checks for controller input on standard-layout gamepads.
func (e *EbitenRenderer) checkGamepadInput(now time.Time) engineinput.Intent {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids)

	for _, id := range ids {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		// Left stick and D-pad both pan, with key repeat
		const deadZone = 0.5
		stickX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		stickY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		pans := []struct {
			pressed bool
			code    string
		}{
			{stickY < -deadZone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop), "gamepad_dpad_up"},
			{stickY > deadZone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom), "gamepad_dpad_down"},
			{stickX < -deadZone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft), "gamepad_dpad_left"},
			{stickX > deadZone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight), "gamepad_dpad_right"},
		}
		for _, p := range pans {
			if e.shouldRepeatKey(p.pressed, fmt.Sprintf("gamepad_%d_%s", id, p.code), now) {
				return intentFor(engineinput.DeviceGamepad, p.code)
			}
		}

		buttons := []struct {
			button ebiten.StandardGamepadButton
			code   string
		}{
			{ebiten.StandardGamepadButtonFrontTopRight, "gamepad_rb"},
			{ebiten.StandardGamepadButtonFrontTopLeft, "gamepad_lb"},
			{ebiten.StandardGamepadButtonCenterRight, "gamepad_start"},
			{ebiten.StandardGamepadButtonRightRight, "gamepad_b"},
		}
		for _, b := range buttons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.button) {
				return intentFor(engineinput.DeviceGamepad, b.code)
			}
		}
	}

	return engineinput.Intent{Action: engineinput.ActionNone}
}

// checkInput checks for keyboard input and returns the corresponding Intent.
// Keys are looked up through the current bindings, so rebound keys work.
func (e *EbitenRenderer) checkInput(now time.Time) engineinput.Intent {
	e.pressedKeys = inpututil.AppendPressedKeys(e.pressedKeys[:0])
	held := make(map[string]bool, len(e.pressedKeys))
	result := engineinput.Intent{Action: engineinput.ActionNone}

	for _, k := range e.pressedKeys {
		code := bindingCode(k)
		// Shift+= types a plus sign
		if code == "=" && ebiten.IsKeyPressed(ebiten.KeyShift) {
			code = "+"
		}
		in := intentFor(engineinput.DeviceKeyboard, code)
		if code == "" || in.Action == engineinput.ActionNone {
			continue
		}
		if repeats(in.Action) {
			held["key_"+code] = true
			if e.shouldRepeatKey(true, "key_"+code, now) && result.Action == engineinput.ActionNone {
				result = in
			}
		} else if inpututil.IsKeyJustPressed(k) && result.Action == engineinput.ActionNone {
			result = in
		}
	}

	e.releaseKeys("key_", held)
	return result
}

// releaseKeys drops repeat state for codes with prefix that are no longer held.
func (e *EbitenRenderer) releaseKeys(prefix string, held map[string]bool) {
	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()
	for code := range e.keyRepeatState {
		if strings.HasPrefix(code, prefix) && !held[code] {
			delete(e.keyRepeatState, code)
		}
	}
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
	}
	return outsideWidth, outsideHeight
}
