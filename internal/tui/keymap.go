package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Drafts
	Casual   key.Binding
	Friendly key.Binding
	Direct   key.Binding
	Skip     key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Casual: key.NewBinding(
			key.WithKeys("c", "1"),
			key.WithHelp("c", "send casual"),
		),
		Friendly: key.NewBinding(
			key.WithKeys("f", "2"),
			key.WithHelp("f", "send friendly"),
		),
		Direct: key.NewBinding(
			key.WithKeys("d", "3"),
			key.WithHelp("d", "send direct"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "space", "right", "l"),
			key.WithHelp("s/→", "skip"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Casual, k.Friendly, k.Direct, k.Skip, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Casual, k.Friendly, k.Direct},
		{k.Skip, k.Help, k.Quit, k.ForceQuit},
	}
}
