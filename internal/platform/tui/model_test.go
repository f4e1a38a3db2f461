package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/game"
	"github.com/vovakirdan/tilt/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

// stuckRows is a full 3x3 board without equal neighbours.
var stuckRows = [][]int{
	{2, 4, 2},
	{4, 2, 4},
	{2, 4, 2},
}

func newSprint(t *testing.T) *game.Game {
	t.Helper()
	v, ok := game.FindVariant("3x3")
	if !ok {
		t.Fatal("3x3 variant not registered")
	}
	return game.NewVariant(v, 1)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm
}

func TestGameModelInitStartsGame(t *testing.T) {
	g := newSprint(t)
	m := NewGameModel(g, nil, testConfig)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a tick")
	}
	if n := 9 - len(g.Board().EmptyCells()); n != 2 {
		t.Errorf("board has %d tiles after Init, want 2", n)
	}
}

func TestGameModelTiltsOnTick(t *testing.T) {
	g := newSprint(t)
	m := NewGameModel(g, nil, testConfig)
	m.Init()
	if err := g.Restore([][]int{{0, 0, 0}, {0, 0, 0}, {2, 0, 2}}, 0); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	m = update(t, m, runeKey('a'))
	m = update(t, m, TickMsg{})

	if got := m.State().Moves; got != 1 {
		t.Errorf("Moves = %d, want 1", got)
	}
	if got := g.Score(); got != 4 {
		t.Errorf("Score = %d, want 4", got)
	}

	// The frame is cleared after the tick, so an idle tick changes nothing.
	m = update(t, m, TickMsg{})
	if got := m.State().Moves; got != 1 {
		t.Errorf("Moves after idle tick = %d, want 1", got)
	}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	g := newSprint(t)
	m := NewGameModel(g, store, testConfig)
	m.Init()
	if err := g.Restore(stuckRows, 120); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if !m.State().GameOver {
		t.Fatal("game should be over")
	}
	scores, err := store.AllScores("3x3")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d results, want 1", len(scores))
	}
	if scores[0].Score != 120 || scores[0].MaxTile != 4 || scores[0].Won {
		t.Errorf("saved %+v, want score 120, max tile 4, not won", scores[0])
	}
}

func TestGameModelSeedsMaxScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult(storage.ScoreEntry{GameID: "3x3", Score: 900}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	g := newSprint(t)
	m := NewGameModel(g, store, testConfig)
	m.Init()

	if got := g.MaxScore(); got != 900 {
		t.Errorf("MaxScore = %d, want 900", got)
	}
}

func TestGameModelBackOnlyWhenOver(t *testing.T) {
	g := newSprint(t)
	m := NewGameModel(g, nil, testConfig)
	m.Init()
	m = update(t, m, TickMsg{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during play should be ignored")
	}

	if err := g.Restore(stuckRows, 0); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := newSprint(t)
	m := NewGameModel(g, nil, testConfig)
	m.Init()
	if err := g.Restore(stuckRows, 40); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	m = update(t, m, TickMsg{})

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if m.State().GameOver {
		t.Error("restart should begin a new game")
	}
	if g.Score() != 0 {
		t.Errorf("Score after restart = %d, want 0", g.Score())
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(newSprint(t), nil, testConfig)
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if gm := next.(GameModel); !gm.IsQuitting() || gm.View() != "" {
		t.Error("model should be quitting with an empty view")
	}
}

func TestGameModelViewIncludesHelp(t *testing.T) {
	m := NewGameModel(newSprint(t), nil, testConfig)
	m.Init()

	view := m.View()
	if !strings.Contains(view, "tilt") || !strings.Contains(view, "quit") {
		t.Errorf("view should end with the help bar, got:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != testConfig.ScreenH {
		t.Errorf("view has %d lines, want %d", lines, testConfig.ScreenH)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, 'c', core.ColorRed)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen produced %d newlines, want 1", n)
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "c") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}
