package core

// Action represents a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - lean left
	ActionCenter         // Down/Up arrow, S - stand straight
	ActionRight          // Right arrow, D - lean right
	ActionRestart        // R - new session after game over
	ActionStop           // X - end the running session early
	ActionSound          // M - toggle sound effects
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionCenter:
		return "Center"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionStop:
		return "Stop"
	case ActionSound:
		return "Sound"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsPose reports whether the action selects a pose (and so a lane).
func (a Action) IsPose() bool {
	return a == ActionLeft || a == ActionCenter || a == ActionRight
}
