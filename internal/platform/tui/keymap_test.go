package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"a", runeKey("a"), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"l", runeKey("l"), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"n", runeKey("n"), core.ActionNext, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionNext, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.Press(core.ActionRight, start)

	frame := core.NewInputFrame()
	h.Apply(&frame, start.Add(100*time.Millisecond))
	if !frame.Has(core.ActionRight) {
		t.Error("key should still be held at the end of the window")
	}

	frame = core.NewInputFrame()
	h.Apply(&frame, start.Add(101*time.Millisecond))
	if frame.Has(core.ActionRight) {
		t.Error("key should be released after the window")
	}

	// Expired keys are forgotten, not just skipped
	frame = core.NewInputFrame()
	h.Apply(&frame, start)
	if frame.Has(core.ActionRight) {
		t.Error("expired key came back")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.Press(core.ActionLeft, start)
	h.Press(core.ActionLeft, start.Add(80*time.Millisecond))

	frame := core.NewInputFrame()
	h.Apply(&frame, start.Add(150*time.Millisecond))
	if !frame.Has(core.ActionLeft) {
		t.Error("repeated press should extend the hold")
	}
}

func TestHeldKeysOppositeCancels(t *testing.T) {
	h := NewHeldKeys(0)
	now := time.Unix(1000, 0)

	h.Press(core.ActionLeft, now)
	h.Press(core.ActionRight, now)

	frame := core.NewInputFrame()
	h.Apply(&frame, now)
	if frame.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("right should be held")
	}

	h.Release()
	frame = core.NewInputFrame()
	h.Apply(&frame, now)
	if frame.Has(core.ActionRight) {
		t.Error("Release should forget every key")
	}
}

func TestHeldKeysIgnoresOneShotActions(t *testing.T) {
	h := NewHeldKeys(DefaultHoldWindow)
	now := time.Unix(1000, 0)

	h.Press(core.ActionJump, now)

	frame := core.NewInputFrame()
	h.Apply(&frame, now)
	if frame.Has(core.ActionJump) {
		t.Error("jump must not be held")
	}
}
