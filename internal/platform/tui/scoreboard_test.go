package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks, rate int
		want        string
	}{
		{600, 60, "10.00s"},
		{90, 60, "1.50s"},
		{45, 30, "1.50s"},
		{12, 0, "12 f"},
	}

	for _, tt := range tests {
		if got := formatTicks(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("formatTicks(%d, %d) = %q, want %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func newTestScoreboard(t *testing.T) ScoreboardModel {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, score := range []int{400, 1200} {
		if _, err := store.SaveScore("platformer", score, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveLevelClear(storage.LevelClear{GameID: "platformer", Level: 2, Score: 700, Ticks: 1800}); err != nil {
		t.Fatalf("SaveLevelClear() failed: %v", err)
	}

	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	return NewScoreboardModel(store, "platformer", []string{"Grassland", "Sky Ruins"}, cfg)
}

func TestScoreboardBoards(t *testing.T) {
	m := newTestScoreboard(t)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("score rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "1200" {
		t.Errorf("top score = %s, want 1200", rows[0][1])
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Errorf("stats = %+v, want 2 runs", m.stats)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.board != BoardClears {
		t.Fatalf("board = %v, want clears", m.board)
	}
	rows = m.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("clear rows = %d, want 1", len(rows))
	}
	if rows[0][0] != "2. Sky Ruins" || rows[0][1] != "30.00s" {
		t.Errorf("clear row = %v, want level 2 in 30.00s", rows[0])
	}

	// Wraps around both ways
	m.switchBoard(1)
	if m.board != BoardScores {
		t.Errorf("board = %v, want scores after wrapping", m.board)
	}
	m.switchBoard(-1)
	if m.board != BoardClears {
		t.Errorf("board = %v, want clears after wrapping back", m.board)
	}
	if m.View() == "" {
		t.Error("View should render the board")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := newTestScoreboard(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("Esc should go back")
	}

	next, _ = m.Update(runeKey("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "platformer", nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	if len(m.table.Rows()) != 0 {
		t.Error("no store should mean no rows")
	}
	if m.View() == "" {
		t.Error("View should still render")
	}
}
