package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Quit   key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reload key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
}

// shortHelp lists the bindings shown in the footer, in display order.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Up, k.Down, k.Toggle, k.Reload, k.Quit}
}
