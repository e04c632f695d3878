package table

import "charm.land/bubbles/v2/key"

// KeyMap is the set of bindings a table responds to while focused.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Toggle     key.Binding
	RangeTo    key.Binding
	ExtendUp   key.Binding
	ExtendDown key.Binding
	ToggleAll  key.Binding
	Clear      key.Binding
	Expand     key.Binding
	Collapse   key.Binding
	SortNext   key.Binding
	SortFlip   key.Binding
	Filter     key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
}

// DefaultKeyMap returns the default table bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Toggle:     key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle row")),
		RangeTo:    key.NewBinding(key.WithKeys("shift+space"), key.WithHelp("⇧ space", "select range")),
		ExtendUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑", "extend up")),
		ExtendDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓", "extend down")),
		ToggleAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all/none")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Expand:     key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "expand")),
		Collapse:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "collapse")),
		SortNext:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		SortFlip:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort direction")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		PrevPage:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.RangeTo, k.Expand, k.Filter}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.RangeTo, k.ExtendUp, k.ExtendDown, k.ToggleAll, k.Clear},
		{k.Expand, k.Collapse, k.SortNext, k.SortFlip, k.Filter, k.PrevPage, k.NextPage},
	}
}
