package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/game"
)

// campaignWinning is the winning value of the campaign variant.
const campaignWinning = 2048

// CampaignSelection is the variant and level picked in the campaign menu.
type CampaignSelection struct {
	GameID string
	Level  int // 1-based start level; 0 starts at the first
}

// campaignOption is one line of a campaign menu page. An option without a
// selection opens the level page.
type campaignOption struct {
	label string
	sel   *CampaignSelection
}

// CampaignMenuModel picks between the campaign, endless play and a
// starting level. It has two pages: modes, then optionally levels.
type CampaignMenuModel struct {
	modes     []campaignOption
	levels    []campaignOption
	onLevels  bool
	cursor    int
	width     int
	keyMapper *KeyMapper

	selected *CampaignSelection
	quitting bool
	back     bool
}

// NewCampaignMenuModel creates the menu on its mode page.
func NewCampaignMenuModel(width, height int) CampaignMenuModel {
	ladder := game.CampaignLevels(campaignWinning)

	levels := make([]campaignOption, len(ladder))
	for i, lvl := range ladder {
		levels[i] = campaignOption{
			label: fmt.Sprintf("%2d. %-18s reach %-5d  4s: %2.0f%%", i+1, lvl.Name, lvl.Target, lvl.Spawn4*100),
			sel:   &CampaignSelection{GameID: campaignMenuID, Level: i + 1},
		}
	}

	return CampaignMenuModel{
		modes: []campaignOption{
			{label: fmt.Sprintf("Campaign (%d levels)", len(ladder)), sel: &CampaignSelection{GameID: campaignMenuID}},
			{label: "Endless Mode", sel: &CampaignSelection{GameID: endlessMenuID}},
			{label: "Select Level..."},
		},
		levels:    levels,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

func (m CampaignMenuModel) page() []campaignOption {
	if m.onLevels {
		return m.levels
	}
	return m.modes
}

// Init implements tea.Model.
func (m CampaignMenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CampaignMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.page())-1)
		case MenuActionSelect:
			opt := m.page()[m.cursor]
			if opt.sel == nil {
				m.onLevels, m.cursor = true, 0
				return m, nil
			}
			m.selected = opt.sel
			return m, tea.Quit
		case MenuActionBack:
			if m.onLevels {
				// Return to the mode page with "Select Level..." highlighted.
				m.onLevels, m.cursor = false, len(m.modes)-1
				return m, nil
			}
			m.back = true
			return m, tea.Quit
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m CampaignMenuModel) View() string {
	if m.quitting {
		return ""
	}

	title := "2 0 4 8"
	if m.onLevels {
		title = "SELECT LEVEL"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	for i, opt := range m.page() {
		if i == m.cursor {
			b.WriteString(menuSelectedStyle.Render(centerText("> "+opt.label, m.width)))
		} else {
			b.WriteString(centerText("  "+opt.label, m.width))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))
	return b.String()
}

// Selected returns the choice, or nil while the player is choosing.
func (m CampaignMenuModel) Selected() *CampaignSelection {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m CampaignMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack reports whether the player left the mode page.
func (m CampaignMenuModel) WantsBack() bool {
	return m.back
}

// RunCampaignMenu runs the campaign menu as its own program. It returns nil
// when the player backs out or quits.
func RunCampaignMenu(cfg core.RuntimeConfig) (*CampaignSelection, error) {
	final, err := tea.NewProgram(NewCampaignMenuModel(cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(CampaignMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
