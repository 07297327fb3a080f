package ebiten

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "mapscope/pkg/engine/input"
)

// wheelScale turns one wheel notch into browse mode wheel units
const wheelScale = 40

// keyCodes maps keyboard keys to raw input codes
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "arrow_up",
	ebiten.KeyArrowDown:  "arrow_down",
	ebiten.KeyArrowLeft:  "arrow_left",
	ebiten.KeyArrowRight: "arrow_right",
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyTab:        "tab",
	ebiten.KeyM:          "m",
	ebiten.KeyF12:        "f12",
	ebiten.KeyEscape:     "escape",
	ebiten.KeyQ:          "q",
	ebiten.KeyPageUp:     "page_up",
	ebiten.KeyPageDown:   "page_down",
	ebiten.KeyShift:      "shift",
	ebiten.KeyEnter:      "enter",
	ebiten.KeySpace:      "space",
	ebiten.KeyZ:          "z",
	ebiten.KeyX:          "x",
}

// gamepadCodes maps standard layout gamepad buttons to raw input codes
var gamepadCodes = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonLeftTop:       "gamepad_dpad_up",
	ebiten.StandardGamepadButtonLeftBottom:    "gamepad_dpad_down",
	ebiten.StandardGamepadButtonLeftLeft:      "gamepad_dpad_left",
	ebiten.StandardGamepadButtonLeftRight:     "gamepad_dpad_right",
	ebiten.StandardGamepadButtonRightBottom:   "gamepad_a",
	ebiten.StandardGamepadButtonRightRight:    "gamepad_b",
	ebiten.StandardGamepadButtonRightLeft:     "gamepad_x",
	ebiten.StandardGamepadButtonRightTop:      "gamepad_y",
	ebiten.StandardGamepadButtonFrontTopLeft:  "gamepad_lb",
	ebiten.StandardGamepadButtonFrontTopRight: "gamepad_rb",
}

// pollInput rebuilds the input snapshot for this tick
func (e *EbitenRenderer) pollInput() {
	e.input.Reset()
	browsing := e.session.Browse().IsActive()

	for key, code := range keyCodes {
		switch {
		case inpututil.IsKeyJustPressed(key):
			e.emit(engineinput.DeviceKeyboard, code, browsing, true)
		case ebiten.IsKeyPressed(key):
			e.emit(engineinput.DeviceKeyboard, code, browsing, false)
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for button, code := range gamepadCodes {
			switch {
			case inpututil.IsStandardGamepadButtonJustPressed(id, button):
				e.emit(engineinput.DeviceGamepad, code, browsing, true)
			case ebiten.IsStandardGamepadButtonPressed(id, button):
				e.emit(engineinput.DeviceGamepad, code, browsing, false)
			}
		}
	}

	if !e.pollTouch() {
		e.pollMouse()
	}
	_, yoff := ebiten.Wheel()
	e.input.WheelY = -yoff * wheelScale
}

// emit runs a raw code through the input layers into the snapshot
func (e *EbitenRenderer) emit(device engineinput.Device, code string, browsing, trigger bool) {
	raw := engineinput.RawInput{Device: device, Code: code, Timestamp: time.Now()}
	intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw), browsing)
	if intent.Action == engineinput.ActionNone {
		return
	}
	if trigger {
		e.input.Trigger(intent.Action)
	} else {
		e.input.Press(intent.Action)
	}
}

func (e *EbitenRenderer) pollMouse() {
	x, y := ebiten.CursorPosition()
	moved := x != e.lastMouseX || y != e.lastMouseY
	e.lastMouseX, e.lastMouseY = x, y

	ptr := &e.input.Pointer
	ptr.X, ptr.Y = float64(x), float64(y)
	ptr.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ptr.Triggered = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ptr.Released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ptr.Moved = moved && ptr.Pressed
	ptr.Hovered = moved && !ptr.Pressed
	ptr.Cancelled = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// pollTouch follows the first finger. A second finger going down cancels.
// It returns false when no touch happened this tick.
func (e *EbitenRenderer) pollTouch() bool {
	ptr := &e.input.Pointer
	ids := ebiten.AppendTouchIDs(nil)
	pressed := inpututil.AppendJustPressedTouchIDs(nil)

	if e.touching && slices.Contains(inpututil.AppendJustReleasedTouchIDs(nil), e.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(e.touchID)
		ptr.X, ptr.Y = float64(x), float64(y)
		ptr.Released = true
		e.touching = false
		return true
	}
	if len(ids) == 0 {
		return false
	}
	if !e.touching || !slices.Contains(ids, e.touchID) {
		e.touchID = ids[0]
		e.touching = true
	}

	x, y := ebiten.TouchPosition(e.touchID)
	px, py := inpututil.TouchPositionInPreviousTick(e.touchID)
	ptr.X, ptr.Y = float64(x), float64(y)
	ptr.Pressed = true
	ptr.Triggered = slices.Contains(pressed, e.touchID)
	ptr.Moved = !ptr.Triggered && (x != px || y != py)
	ptr.Cancelled = len(ids) > 1 && len(pressed) > 0
	return true
}

// toggleConsolePressed reports the backtick key, or Shift+; on layouts without one
func (e *EbitenRenderer) toggleConsolePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyGraveAccent) {
		return true
	}
	return inpututil.IsKeyJustPressed(ebiten.KeySemicolon) && ebiten.IsKeyPressed(ebiten.KeyShift)
}
