package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/innobee/feedback/internal/feedback"
)

// interest choices in display order
const (
	choiceNotInterested = iota
	choiceInterested
	choiceCount
)

// Model represents the main application state
type Model struct {
	wizard    *feedback.Wizard
	submitter feedback.Submitter
	version   string

	keys        KeyMap
	help        help.Model
	helpVisible bool
	spinner     spinner.Model
	progress    progress.Model

	// rating step
	ratingCursor int // 1..5, follows the selection once one is made

	// opinion step
	opinion textarea.Model

	// interest step
	interestCursor int
	email          textinput.Model
	emailFocused   bool
	emailErr       string

	stepErr string // validation message for the current step

	width  int
	height int
}

// KeyMap defines key bindings
type KeyMap struct {
	Rate    key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Confirm key.Binding
	Select  key.Binding
	Back    key.Binding
	Finish  key.Binding
	Restart key.Binding
	Leave   key.Binding
	Quit    key.Binding
	Help    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "rate"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "lower"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "higher"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "ctrl+n"),
			key.WithHelp("tab", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "shift+tab"),
			key.WithHelp("shift+tab", "back"),
		),
		Finish: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "finish"),
		),
		Restart: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new response"),
		),
		Leave: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rate, k.Left, k.Right},
		{k.Up, k.Down, k.Select, k.Confirm},
		{k.Next, k.Back, k.Finish},
		{k.Restart, k.Leave, k.Quit, k.Help},
	}
}
