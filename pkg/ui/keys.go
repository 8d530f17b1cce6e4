package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all viewer key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Back     key.Binding
	Reset    key.Binding
	Detail   key.Binding
	Weights  key.Binding
	Snapshot key.Binding
	Yank     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "focus node"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "h", "left", "esc", "backspace"),
			key.WithHelp("b", "up one level"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "home"),
			key.WithHelp("r", "reset to root"),
		),
		Detail: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle detail"),
		),
		Weights: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle weights"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save snapshot"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
