package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/registry"
	"github.com/vovakirdan/tilt/internal/storage"
)

// startLeveler is implemented by games with selectable campaign levels.
type startLeveler interface {
	SetStartLevel(level int)
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenCampaign
	screenScoreboard
	screenGame
)

// SessionModel chains every screen inside one Bubble Tea program, as SSH
// sessions need: menu, campaign picker, scoreboard and game, always
// returning to the menu.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger

	screen     sessionScreen
	menu       MenuModel
	campaign   CampaignMenuModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a session on the menu. store may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		logger: log.Default().With("user", username),
		menu:   NewMenuModel(cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update forwards msg to the active screen, then follows the transition
// that screen asked for, if any.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenMenu:
		m.menu, cmd = forward(m.menu, msg)
		switch sel := m.menu.Selected(); {
		case m.menu.IsQuitting():
			return m.quit()
		case m.menu.WantsScoreboard():
			return m.show(screenScoreboard)
		case sel != nil && sel.GameID == campaignMenuID:
			return m.show(screenCampaign)
		case sel != nil:
			return m.startGame(CampaignSelection{GameID: sel.GameID})
		}

	case screenCampaign:
		m.campaign, cmd = forward(m.campaign, msg)
		switch {
		case m.campaign.IsQuitting():
			return m.quit()
		case m.campaign.WantsBack():
			return m.show(screenMenu)
		case m.campaign.Selected() != nil:
			return m.startGame(*m.campaign.Selected())
		}

	case screenScoreboard:
		m.scoreboard, cmd = forward(m.scoreboard, msg)
		switch {
		case m.scoreboard.IsQuitting():
			return m.quit()
		case m.scoreboard.IsGoingBack():
			return m.show(screenMenu)
		}

	case screenGame:
		var gm GameModel
		gm, cmd = forward(*m.gameModel, msg)
		m.gameModel = &gm
		switch {
		case gm.IsQuitting():
			return m.quit()
		case gm.BackToMenu():
			st := gm.State()
			m.logger.Debug("game left", "score", st.Score, "max_tile", st.MaxTile)
			return m.show(screenMenu)
		}
	}
	return m, cmd
}

// forward updates a screen model and keeps its concrete type.
func forward[M tea.Model](model M, msg tea.Msg) (M, tea.Cmd) {
	next, cmd := model.Update(msg)
	if typed, ok := next.(M); ok {
		return typed, cmd
	}
	return model, cmd
}

// show switches to a fresh instance of screen. Leaving a game drops it.
func (m SessionModel) show(screen sessionScreen) (tea.Model, tea.Cmd) {
	w, h := m.config.ScreenW, m.config.ScreenH
	m.screen = screen
	m.gameModel = nil
	switch screen {
	case screenCampaign:
		m.campaign = NewCampaignMenuModel(w, h)
		return m, m.campaign.Init()
	case screenScoreboard:
		m.scoreboard = NewScoreboardModel(m.store, w, h)
		return m, m.scoreboard.Init()
	default:
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// startGame creates the selected variant and switches to it. An unknown
// variant returns to the menu.
func (m SessionModel) startGame(sel CampaignSelection) (tea.Model, tea.Cmd) {
	g, err := registry.Create(sel.GameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", sel.GameID, "error", err)
		return m.show(screenMenu)
	}
	if l, ok := g.(startLeveler); ok && sel.Level > 0 {
		l.SetStartLevel(sel.Level)
	}
	m.logger.Debug("game started", "game", sel.GameID, "level", sel.Level)

	gm := NewGameModel(g, m.store, m.config)
	gm.logger = m.logger
	m.gameModel = &gm
	m.screen = screenGame
	return m, gm.Init()
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.screen == screenCampaign:
		return m.campaign.View()
	case m.screen == screenScoreboard:
		return m.scoreboard.View()
	case m.screen == screenGame && m.gameModel != nil:
		return m.gameModel.View()
	}
	return m.menu.View()
}
