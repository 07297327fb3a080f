package input

import "github.com/zyedidia/generic/mapset"

// Pointer is the per-tick mouse/touch snapshot in screen pixels.
type Pointer struct {
	X, Y float64

	Pressed   bool // held this tick
	Triggered bool // went down this tick
	Released  bool // went up this tick
	Moved     bool // position changed while held
	Hovered   bool // position changed with nothing held
	Cancelled bool // secondary button / two-finger tap
}

// State is the input snapshot handed to the minimap once per tick.
type State struct {
	pressed   mapset.Set[Action]
	triggered mapset.Set[Action]

	Pointer Pointer
	WheelY  float64
}

// NewState creates an empty input snapshot
func NewState() *State {
	return &State{
		pressed:   mapset.New[Action](),
		triggered: mapset.New[Action](),
	}
}

// Press records an action held this tick
func (s *State) Press(a Action) {
	s.pressed.Put(a)
}

// Trigger records an action that started this tick; triggered actions are also pressed
func (s *State) Trigger(a Action) {
	s.triggered.Put(a)
	s.pressed.Put(a)
}

// IsPressed returns true if the action is held
func (s *State) IsPressed(a Action) bool {
	return s != nil && s.pressed.Has(a)
}

// IsTriggered returns true if the action started this tick
func (s *State) IsTriggered(a Action) bool {
	return s != nil && s.triggered.Has(a)
}

// Reset clears the snapshot for the next tick
func (s *State) Reset() {
	s.pressed = mapset.New[Action]()
	s.triggered = mapset.New[Action]()
	s.Pointer = Pointer{}
	s.WheelY = 0
}
