package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DevicePointer
)

// Action represents a high‑level intent on the map screen.
type Action int

const (
	ActionNone Action = iota

	// Player movement (host map)
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	// Browse mode cursor
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionAccelerate // Held modifier doubling cursor speed
	ActionOK         // Toggle pin in browse mode, board or leave a vehicle on the map
	ActionCancel     // Leave browse mode
	ActionZoomIn     // Page up
	ActionZoomOut    // Page down

	// Meta / UI
	ActionCycleMinimap
	ActionOpenMap
	ActionScreenshot
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "gamepad_a").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Ebiten's inpututil already reports key edges, so each RawInput maps one to one.
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

// mapBindings maps raw codes to actions while the host map is active.
var mapBindings = map[string]Action{
	"arrow_up":    ActionMoveNorth,
	"w":           ActionMoveNorth,
	"arrow_down":  ActionMoveSouth,
	"s":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"a":           ActionMoveWest,
	"arrow_right": ActionMoveEast,
	"d":           ActionMoveEast,

	"enter":      ActionOK,
	"space":      ActionOK,
	"gamepad_a":  ActionOK,
	"tab":        ActionCycleMinimap,
	"m":          ActionOpenMap,
	"f12":        ActionScreenshot,
	"escape":     ActionQuit,
	"q":          ActionQuit,
	"page_up":    ActionZoomIn,
	"page_down":  ActionZoomOut,
	"gamepad_y":  ActionOpenMap,
	"gamepad_lb": ActionZoomOut,
	"gamepad_rb": ActionZoomIn,

	"gamepad_dpad_up":    ActionMoveNorth,
	"gamepad_dpad_down":  ActionMoveSouth,
	"gamepad_dpad_left":  ActionMoveWest,
	"gamepad_dpad_right": ActionMoveEast,
}

// browseBindings maps raw codes to actions while browse mode is open.
var browseBindings = map[string]Action{
	"arrow_up":    ActionCursorUp,
	"w":           ActionCursorUp,
	"arrow_down":  ActionCursorDown,
	"s":           ActionCursorDown,
	"arrow_left":  ActionCursorLeft,
	"a":           ActionCursorLeft,
	"arrow_right": ActionCursorRight,
	"d":           ActionCursorRight,
	"shift":       ActionAccelerate,

	"enter":     ActionOK,
	"space":     ActionOK,
	"z":         ActionOK,
	"escape":    ActionCancel,
	"x":         ActionCancel,
	"m":         ActionCancel,
	"page_up":   ActionZoomIn,
	"page_down": ActionZoomOut,

	"gamepad_dpad_up":    ActionCursorUp,
	"gamepad_dpad_down":  ActionCursorDown,
	"gamepad_dpad_left":  ActionCursorLeft,
	"gamepad_dpad_right": ActionCursorRight,
	"gamepad_a":          ActionOK,
	"gamepad_b":          ActionCancel,
	"gamepad_x":          ActionAccelerate,
	"gamepad_lb":         ActionZoomOut,
	"gamepad_rb":         ActionZoomIn,
}

// MapToIntent is the 3rd+4th layer: it applies the bindings of the active
// screen to a debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput, browsing bool) Intent {
	table := mapBindings
	if browsing {
		table = browseBindings
	}
	if act, ok := table[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveEast:
		return "Move East"
	case ActionCursorUp:
		return "Cursor Up"
	case ActionCursorDown:
		return "Cursor Down"
	case ActionCursorLeft:
		return "Cursor Left"
	case ActionCursorRight:
		return "Cursor Right"
	case ActionAccelerate:
		return "Accelerate"
	case ActionOK:
		return "OK"
	case ActionCancel:
		return "Cancel"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionCycleMinimap:
		return "Cycle Minimap"
	case ActionOpenMap:
		return "Open Map"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction(browsing bool) map[Action][]string {
	table := mapBindings
	if browsing {
		table = browseBindings
	}
	result := make(map[Action][]string)
	for code, act := range table {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Codes returns every raw code bound on either screen, sorted.
func Codes() []string {
	seen := make(map[string]bool)
	for c := range mapBindings {
		seen[c] = true
	}
	for c := range browseBindings {
		seen[c] = true
	}
	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
