package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateMenu(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuListsVariantsWithoutEndlessTwin(t *testing.T) {
	m := NewMenuModel(testConfig)

	ids := make(map[string]bool)
	for _, item := range m.items {
		ids[item.GameID] = true
	}
	if ids[endlessMenuID] {
		t.Errorf("menu should not list %s directly", endlessMenuID)
	}
	for _, id := range []string{"2048", "3x3", "5x5", "6x6", "custom"} {
		if !ids[id] {
			t.Errorf("menu is missing %s", id)
		}
	}
}

func TestMenuDetails(t *testing.T) {
	m := NewMenuModel(testConfig)
	want := map[string]string{
		"2048": "4x4, 6 levels",
		"3x3":  "3x3, reach 256",
		"6x6":  "6x6, endless",
	}
	for _, item := range m.items {
		if w, ok := want[item.GameID]; ok && item.Detail != w {
			t.Errorf("%s detail = %q, want %q", item.GameID, item.Detail, w)
		}
	}
	if view := m.View(); !strings.Contains(view, "3x3 Sprint") {
		t.Error("menu view is missing the 3x3 Sprint variant")
	}
}

func TestMenuSelect(t *testing.T) {
	m := updateMenu(NewMenuModel(testConfig),
		tea.KeyMsg{Type: tea.KeyUp}, // clamped at the top
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after Enter")
	}
	if sel.GameID != m.items[1].GameID {
		t.Errorf("Selected() = %s, want %s", sel.GameID, m.items[1].GameID)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := updateMenu(NewMenuModel(testConfig), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("Tab should open the scoreboard")
	}

	m = updateMenu(NewMenuModel(testConfig), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := updateMenu(NewMenuModel(testConfig), tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCampaignMenu(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want CampaignSelection
	}{
		{
			name: "campaign",
			keys: []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}},
			want: CampaignSelection{GameID: campaignMenuID},
		},
		{
			name: "endless",
			keys: []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}},
			want: CampaignSelection{GameID: endlessMenuID},
		},
		{
			name: "third level",
			keys: []tea.Msg{
				tea.KeyMsg{Type: tea.KeyDown},
				tea.KeyMsg{Type: tea.KeyDown},
				tea.KeyMsg{Type: tea.KeyEnter},
				tea.KeyMsg{Type: tea.KeyDown},
				tea.KeyMsg{Type: tea.KeyDown},
				tea.KeyMsg{Type: tea.KeyEnter},
			},
			want: CampaignSelection{GameID: campaignMenuID, Level: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCampaignMenuModel(80, 24)
			for _, msg := range tt.keys {
				next, _ := m.Update(msg)
				m = next.(CampaignMenuModel)
			}
			sel := m.Selected()
			if sel == nil {
				t.Fatal("Selected() = nil")
			}
			if *sel != tt.want {
				t.Errorf("Selected() = %+v, want %+v", *sel, tt.want)
			}
		})
	}
}

func TestCampaignMenuBack(t *testing.T) {
	m := NewCampaignMenuModel(80, 24)
	press := func(k tea.KeyType) {
		next, _ := m.Update(tea.KeyMsg{Type: k})
		m = next.(CampaignMenuModel)
	}

	press(tea.KeyDown)
	press(tea.KeyDown)
	press(tea.KeyEnter) // level list
	press(tea.KeyEsc)   // back to modes
	if m.WantsBack() || m.Selected() != nil {
		t.Fatal("Esc in the level list should only close the list")
	}
	if !strings.Contains(m.View(), "> Select Level...") {
		t.Error("closing the level list should highlight Select Level...")
	}

	press(tea.KeyEsc)
	if !m.WantsBack() {
		t.Error("Esc on the mode list should go back")
	}
}
