package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Apply    key.Binding
	NextCity key.Binding
	PrevCity key.Binding
	Undo     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply change"),
		),
		NextCity: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab/→", "next city"),
		),
		PrevCity: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab/←", "previous city"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.NextCity, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.Undo, k.Reset},
		{k.NextCity, k.PrevCity},
		{k.Help, k.Quit},
	}
}
