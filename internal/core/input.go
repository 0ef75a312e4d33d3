package core

// Action represents a semantic input action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - tilt left
	ActionRight          // Right arrow, D - tilt right
	ActionLevel          // Down arrow, S - level the device
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R - new session after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLevel:
		return "Level"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Acceleration is a 3-axis accelerometer sample in g.
// Only X drives the collector; Y and Z are carried for completeness.
type Acceleration struct {
	X, Y, Z float64
}

// InputFrame is the input state for one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	Tilt    Acceleration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame. Tilt is a continuous
// signal and is left untouched.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
