package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/game"
)

func updateSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, want SessionModel", next)
		}
		m = sm
	}
	return m
}

func TestSessionStartsCampaignAtLevel(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "tester")

	// 2048 sorts first; Enter opens the campaign menu.
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenCampaign {
		t.Fatalf("screen = %d, want campaign menu", m.screen)
	}

	m = updateSession(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %d, want game", m.screen)
	}

	g, ok := m.gameModel.game.(*game.Game)
	if !ok {
		t.Fatalf("game is %T, want *game.Game", m.gameModel.game)
	}
	if snap := g.Snapshot(); snap.Level != 2 || snap.Target != 128 {
		t.Errorf("level %d target %d, want 2 and 128", snap.Level, snap.Target)
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(openStore(t), testConfig, "tester")

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %d, want scoreboard", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should show its title")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %d, want menu", m.screen)
	}
}

func TestSessionGameBackToMenu(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "tester")
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %d, want game", m.screen)
	}

	g := m.gameModel.game.(*game.Game)
	if err := g.Restore(stuckRows, 0); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	m = updateSession(t, m, TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})

	if m.screen != screenMenu || m.gameModel != nil {
		t.Errorf("screen = %d, want menu after leaving a finished game", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig, "tester")
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q on the menu should quit the session")
	}
}
