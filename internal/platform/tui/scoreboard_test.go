package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/storage"
)

func TestScoreboardCyclesVariants(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if len(m.variants) < 2 {
		t.Fatalf("scoreboard lists %d variants, want at least 2", len(m.variants))
	}
	first := m.variants[0].ID

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.current != 1 {
		t.Errorf("current after tab = %d, want 1", m.current)
	}

	for range 2 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		m = next.(ScoreboardModel)
	}
	if want := len(m.variants) - 1; m.current != want {
		t.Errorf("current after wrapping back = %d, want %d", m.current, want)
	}
	if m.variants[0].ID != first {
		t.Error("variant order changed while cycling")
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("scoreboard without a store should show the empty message")
	}
}

func TestScoreboardShowsResults(t *testing.T) {
	store := openStore(t)
	for _, e := range []storage.ScoreEntry{
		{GameID: "2048", Score: 1200, MaxTile: 128, Moves: 140},
		{GameID: "2048", Score: 30000, MaxTile: 2048, Moves: 900, Won: true},
	} {
		if _, err := store.SaveResult(e); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if m.variants[m.current].ID != "2048" {
		t.Fatalf("first variant = %s, want 2048", m.variants[m.current].ID)
	}
	if len(m.results) != 2 || m.results[0].Score != 30000 {
		t.Fatalf("results = %+v, want the 30000 win first", m.results)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - 2048", "30000", "Games: 2  Wins: 1  Best tile: 2048"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if sm := next.(ScoreboardModel); !sm.IsGoingBack() || sm.IsQuitting() || cmd == nil {
		t.Error("esc should go back to the menu")
	}

	next, _ = m.Update(runeKey('q'))
	if sm := next.(ScoreboardModel); !sm.IsQuitting() || sm.IsGoingBack() {
		t.Error("q should quit")
	}
}
