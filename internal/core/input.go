package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // A, Left arrow - held rotation
	ActionRotateRight        // D, Right arrow - held rotation
	ActionThrust             // W, Up arrow - held thrust
	ActionFire               // Space - edge-triggered shot
	ActionStart              // Enter - leave the title prompt
	ActionRestart            // R key - restart game after game over
	ActionPause              // P - pause/unpause game
	ActionBack               // B, Escape - leave a sub-screen
	ActionScoreboard         // Tab - open the scoreboard
	ActionQuit               // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionThrust:
		return "Thrust"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// Held actions (rotate, thrust) are present on every frame the key is held;
// edge actions (fire, start, restart, pause) are present only on the frame they occurred.
type InputFrame struct {
	Actions map[Action]bool
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

// Unset removes an action from this frame.
func (f *InputFrame) Unset(a Action) {
	delete(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
