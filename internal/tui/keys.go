package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the dashboard TUI.
type KeyMap struct {
	SwitchTab key.Binding

	// Management list.
	Up       key.Binding
	Down     key.Binding
	Visible  key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Expand   key.Binding

	// Expanded settings panel.
	PrevControl key.Binding
	NextControl key.Binding
	Activate    key.Binding
	Increase    key.Binding
	Decrease    key.Binding

	Reset key.Binding
	Quit  key.Binding
}

var DefaultKeyMap = KeyMap{
	SwitchTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Visible: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "show/hide"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "move down"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "settings"),
	),
	PrevControl: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev control"),
	),
	NextControl: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next control"),
	),
	Activate: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "select"),
	),
	Increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "increase"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "decrease"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) dashboardHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Reset, k.Quit}
}

func (k KeyMap) manageHelp(panelOpen bool) []key.Binding {
	if panelOpen {
		return []key.Binding{k.PrevControl, k.NextControl, k.Activate, k.Increase, k.Decrease, k.Expand, k.Quit}
	}
	return []key.Binding{k.SwitchTab, k.Up, k.Down, k.Visible, k.MoveUp, k.MoveDown, k.Expand, k.Reset, k.Quit}
}
