package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt/internal/core"
)

// GameKeyMap holds the in-game bindings. The same bindings drive input
// mapping and the help bar.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding

	tilt key.Binding // Help entry standing for the four directions
}

// ShortHelp implements help.KeyMap.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tilt, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Pause, k.Restart, k.Back, k.Quit}}
}

// DefaultGameKeyMap returns arrows, WASD and vim keys for tilting.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("up", "tilt north")),
		Down:    key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("down", "tilt south")),
		Left:    key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("left", "tilt west")),
		Right:   key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("right", "tilt east")),
		Confirm: key.NewBinding(key.WithKeys("enter")),
		Pause:   key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		tilt:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows/wasd", "tilt")),
	}
}

// MenuAction is what a key does in a menu.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type gameBinding struct {
	binding key.Binding
	action  core.Action
}

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// KeyMapper turns Bubble Tea key messages into game and menu actions.
type KeyMapper struct {
	keys GameKeyMap
	game []gameBinding
	menu []menuBinding
}

// NewKeyMapper creates a mapper over DefaultGameKeyMap.
func NewKeyMapper() *KeyMapper {
	k := DefaultGameKeyMap()
	return &KeyMapper{
		keys: k,
		game: []gameBinding{
			{k.Quit, core.ActionQuit},
			{k.Up, core.ActionUp},
			{k.Down, core.ActionDown},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.Confirm, core.ActionConfirm},
			{k.Back, core.ActionBack},
			{k.Pause, core.ActionPause},
			{k.Restart, core.ActionRestart},
		},
		menu: []menuBinding{
			{k.Quit, MenuActionQuit},
			{key.NewBinding(key.WithKeys("up", "w", "k")), MenuActionUp},
			{key.NewBinding(key.WithKeys("down", "s", "j")), MenuActionDown},
			{key.NewBinding(key.WithKeys("enter", " ")), MenuActionSelect},
			{k.Back, MenuActionBack},
			{key.NewBinding(key.WithKeys("tab")), MenuActionScoreboard},
		},
	}
}

// Keys returns the bindings behind the mapper, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey returns the game action bound to msg, or ActionNone. isQuit is
// set for the quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the action bound to msg to frame and reports whether
// msg was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
