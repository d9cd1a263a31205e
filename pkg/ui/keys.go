package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts of the host window. The tree itself
// is driven by the mouse only.
type KeyMap struct {
	Reload key.Binding
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
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

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{mouseBinding("click", "open/close node"), mouseBinding("right-click", "copy code")},
		{k.Reload, k.Export},
		{k.Help, k.Quit},
	}
}

// mouseBinding documents a mouse gesture in the help view. The help model
// hides bindings without keys, so the gesture doubles as one; App never
// matches it.
func mouseBinding(gesture, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(gesture), key.WithHelp(gesture, desc))
}
