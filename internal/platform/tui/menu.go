package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/game"
	"github.com/vovakirdan/tilt/internal/registry"
)

// campaignMenuID is the variant that opens the campaign sub-menu; its
// endless twin is reached from there.
const (
	campaignMenuID = "2048"
	endlessMenuID  = "2048_endless"
)

// MenuItem is one entry of the variant picker.
type MenuItem struct {
	GameID string
	Title  string
	Detail string // Board size and goal, shown next to the title
}

// MenuModel is the variant picker shown before a game starts.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting   bool
	selected   *MenuItem
	scoreboard bool
}

// NewMenuModel lists every registered variant except the endless twin of
// the campaign, which the campaign menu offers instead.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		if info.ID == endlessMenuID {
			continue
		}
		items = append(items, MenuItem{GameID: info.ID, Title: info.Title, Detail: variantDetail(info.ID)})
	}
	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

// variantDetail describes a built-in variant, or returns "" for games that
// are not variants.
func variantDetail(id string) string {
	v, ok := game.FindVariant(id)
	if !ok {
		return ""
	}
	opts := v.Resolve(0)
	switch opts.Mode {
	case game.ModeEndless:
		return fmt.Sprintf("%dx%d, endless", opts.Size, opts.Size)
	case game.ModeCampaign:
		return fmt.Sprintf("%dx%d, %d levels", opts.Size, opts.Size, game.LevelCount(opts.Winning))
	default:
		return fmt.Sprintf("%dx%d, reach %d", opts.Size, opts.Size, opts.Winning)
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.scoreboard = true
			return m, tea.Quit
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	// Pad titles so the details line up in one column.
	titleWidth := 0
	for _, item := range m.items {
		titleWidth = max(titleWidth, lipgloss.Width(item.Title))
	}

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("  T I L T  ", width)),
		"",
		centerText("Pick a board", width),
		"",
	}
	for i, item := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := centerText(fmt.Sprintf("%s%-*s  %s", marker, titleWidth, item.Title, menuHintStyle.Render(item.Detail)), width)
		if i == m.cursor {
			line = menuSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "",
		menuHintStyle.Render(centerText("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit", width)),
		"")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen item, or nil while the player is choosing.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the high scores.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config, updated with the latest window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player chose in the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the variant picker as its own program.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
