package styles

// Glyphs used by table columns and the status bar.
var (
	IconChecked       = "[x]"
	IconUnchecked     = "[ ]"
	IconIndeterminate = "[-]"

	IconExpanded  = "▾"
	IconCollapsed = "▸"

	IconRange  = "⇧"
	IconFilter = "/"
	IconLive   = "●"
)
