package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// DefaultHoldTimeout is how long a held action survives without a key
// repeat. Terminals report presses only, so a hold is a stream of repeats.
const DefaultHoldTimeout = 250 * time.Millisecond

// heldActions are the controls that stay active while their key repeats.
var heldActions = map[core.Action]bool{
	core.ActionRotateLeft:  true,
	core.ActionRotateRight: true,
	core.ActionThrust:      true,
}

// KeyMapper translates Bubble Tea key messages to game actions.
// It also tracks held controls, since terminals never report key releases.
type KeyMapper struct {
	hold time.Duration
	held map[core.Action]time.Time
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWithHold(DefaultHoldTimeout)
}

// NewKeyMapperWithHold creates a key mapper with a custom hold timeout.
func NewKeyMapperWithHold(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHoldTimeout
	}
	return &KeyMapper{
		hold: hold,
		held: make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a", "h":
		return core.ActionRotateLeft, false
	case "right", "d", "l":
		return core.ActionRotateRight, false
	case "up", "w", "k":
		return core.ActionThrust, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionStart, false
	case "r":
		return core.ActionRestart, false
	case "p", "esc":
		return core.ActionPause, false
	case "tab":
		return core.ActionScoreboard, false
	case "b":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// Press records a key press at now. Held controls are refreshed, with the
// newest rotate direction replacing the other. Other actions go straight
// into frame. Returns the action and whether it's a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) (core.Action, bool) {
	action, isQuit := km.MapKey(msg)
	switch {
	case action == core.ActionNone || isQuit:
	case heldActions[action]:
		switch action {
		case core.ActionRotateLeft:
			delete(km.held, core.ActionRotateRight)
		case core.ActionRotateRight:
			delete(km.held, core.ActionRotateLeft)
		}
		km.held[action] = now
	default:
		frame.Set(action)
	}
	return action, isQuit
}

// Apply adds every held control still alive at now to frame and forgets
// the ones whose key stopped repeating.
func (km *KeyMapper) Apply(now time.Time, frame *core.InputFrame) {
	for action, seen := range km.held {
		if now.Sub(seen) > km.hold {
			delete(km.held, action)
			continue
		}
		frame.Set(action)
	}
}

// Holding reports whether an action is currently held.
func (km *KeyMapper) Holding(action core.Action) bool {
	_, ok := km.held[action]
	return ok
}

// Release drops every held control.
func (km *KeyMapper) Release() {
	clear(km.held)
}
