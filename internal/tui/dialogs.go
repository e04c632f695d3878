package tui

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/hay-kot/tvconsole/internal/tui/components"
)

func (m Model) newHelpDialog() *components.HelpDialog {
	var tableBindings components.HelpSection
	tableBindings.Title = "Tables"
	for _, group := range m.activeTab().KeyMap().FullHelp() {
		tableBindings.Bindings = append(tableBindings.Bindings, group...)
	}

	return components.NewHelpDialog("Keys", []components.HelpSection{
		tableBindings,
		{Title: "Console", Bindings: m.keys.Bindings()},
	})
}

func (m Model) newInfoDialog(info DatabaseInfo) *components.InfoDialog {
	var sections []components.InfoSection

	if info.Path != "" {
		sections = append(sections, components.InfoSection{
			Title: "Database",
			Items: []components.InfoItem{
				{Label: "Path", Value: info.Path},
				{Label: "Schema version", Value: strconv.Itoa(info.SchemaVersion), Status: components.InfoStatusPass},
			},
		})
	}

	counts := m.snapshot.Counts()
	catalogItems := []components.InfoItem{
		{Label: "Channels", Value: strconv.Itoa(counts.Channels)},
		{Label: "Streams", Value: strconv.Itoa(counts.Streams)},
		{Label: "Logos", Value: strconv.Itoa(counts.Logos)},
		{Label: "Users", Value: strconv.Itoa(counts.Users)},
		{Label: "EPG sources", Value: strconv.Itoa(counts.EPGSources)},
	}
	if counts.Channels == 0 {
		catalogItems[0].Status = components.InfoStatusWarn
	}
	sections = append(sections, components.InfoSection{Title: "Catalog", Items: catalogItems})

	var selected []components.InfoItem
	for _, t := range m.tabs {
		if n := len(t.SelectedIDs()); n > 0 {
			selected = append(selected, components.InfoItem{Label: t.Title(), Value: fmt.Sprintf("%d selected", n)})
		}
	}
	if len(selected) > 0 {
		sections = append(sections, components.InfoSection{Title: "Selection", Items: selected})
	}

	footer := ""
	if m.loaded {
		footer = "loaded " + humanize.Time(m.snapshot.LoadedAt)
	}
	if m.build.Version != "" {
		footer += "  tvconsole " + m.build.Version
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return components.NewInfoDialog("Info", sections, footer, "j/k scroll • esc close", w, h)
}
