package tui

import "charm.land/bubbles/v2/key"

// KeyMap defines the console-level bindings. Table bindings live in
// table.KeyMap.
type KeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Jump    key.Binding
	Copy    key.Binding
	Refresh key.Binding
	Info    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the console bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next table")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous table")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to table")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selected ids")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "database info")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Bindings lists the console bindings in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.NextTab, k.PrevTab, k.Jump, k.Copy, k.Refresh, k.Info, k.Help, k.Quit}
}
