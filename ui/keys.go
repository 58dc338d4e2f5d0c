package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the live view.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Pause    key.Binding
	Rescan   key.Binding // refresh SMART and Wi-Fi now
	AllIf    key.Binding // show down interfaces
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab/→", "next section"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("S-tab/←", "previous section"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan SMART/Wi-Fi"),
	),
	AllIf: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all interfaces"),
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

// bindings lists the bindings in help order.
func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Next, k.Prev, k.Up, k.Down, k.PageUp, k.PageDown, k.Top,
		k.Pause, k.Rescan, k.AllIf, k.Help, k.Quit,
	}
}
