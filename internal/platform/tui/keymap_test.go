package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft, false},
		{"a", runeKey('a'), core.ActionRotateLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight, false},
		{"d", runeKey('d'), core.ActionRotateRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrust, false},
		{"w", runeKey('w'), core.ActionThrust, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestPressOneShotGoesToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	now := time.Unix(100, 0)

	km.Press(tea.KeyMsg{Type: tea.KeySpace}, now, &frame)

	if !frame.Has(core.ActionFire) {
		t.Error("fire should be set immediately")
	}
	if km.Holding(core.ActionFire) {
		t.Error("fire is not a held control")
	}
}

func TestHeldControlDecays(t *testing.T) {
	km := NewKeyMapperWithHold(100 * time.Millisecond)
	start := time.Unix(100, 0)

	frame := core.NewInputFrame()
	km.Press(runeKey('w'), start, &frame)
	if frame.Has(core.ActionThrust) {
		t.Error("held controls are applied on tick, not on press")
	}

	frame.Clear()
	km.Apply(start.Add(80*time.Millisecond), &frame)
	if !frame.Has(core.ActionThrust) {
		t.Error("thrust should still be held inside the timeout")
	}

	// A key repeat refreshes the hold
	km.Press(runeKey('w'), start.Add(90*time.Millisecond), &frame)
	frame.Clear()
	km.Apply(start.Add(170*time.Millisecond), &frame)
	if !frame.Has(core.ActionThrust) {
		t.Error("a repeat should extend the hold")
	}

	frame.Clear()
	km.Apply(start.Add(300*time.Millisecond), &frame)
	if frame.Has(core.ActionThrust) || km.Holding(core.ActionThrust) {
		t.Error("thrust should be released once repeats stop")
	}
}

func TestLatestRotationWins(t *testing.T) {
	km := NewKeyMapper()
	now := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(tea.KeyMsg{Type: tea.KeyLeft}, now, &frame)
	km.Press(tea.KeyMsg{Type: tea.KeyRight}, now.Add(time.Millisecond), &frame)
	km.Apply(now.Add(2*time.Millisecond), &frame)

	if frame.Has(core.ActionRotateLeft) || !frame.Has(core.ActionRotateRight) {
		t.Error("the most recent rotate direction should replace the other")
	}
}

func TestRelease(t *testing.T) {
	km := NewKeyMapper()
	now := time.Unix(100, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey('w'), now, &frame)
	km.Press(runeKey('a'), now, &frame)
	km.Release()
	km.Apply(now, &frame)

	if frame.Has(core.ActionThrust) || frame.Has(core.ActionRotateLeft) {
		t.Error("Release should drop every held control")
	}
}

func TestElapsedSince(t *testing.T) {
	now := time.Unix(100, 0)

	tests := []struct {
		name string
		prev time.Time
		want time.Duration
	}{
		{"first tick", time.Time{}, time.Second / 60},
		{"measured", now.Add(-20 * time.Millisecond), 20 * time.Millisecond},
		{"clock stepped back", now.Add(time.Second), time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elapsedSince(tt.prev, now, 60); got != tt.want {
				t.Errorf("elapsedSince = %v, expected %v", got, tt.want)
			}
		})
	}
}
