package catalog

import (
	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

type streamCell = table.Cell[catalog.Stream, string]

var streamsTable = definition[catalog.Stream, string]{
	name:  config.TableStreams,
	title: "Streams",
	columns: func() []grid.Column[catalog.Stream] {
		return []grid.Column[catalog.Stream]{
			{
				ID: "name", Header: "Name", MinWidth: 12, Sortable: true, Filterable: true,
				Value: func(s catalog.Stream) string { return s.Name },
			},
			{
				ID: "group", Header: "Group", Width: 14, Sortable: true, Filterable: true,
				Value: func(s catalog.Stream) string { return s.Group },
			},
			{
				ID: "account", Header: "Account", Width: 12, Sortable: true, Filterable: true,
				Value: func(s catalog.Stream) string { return s.Account },
			},
			{
				ID: "url", Header: "URL", MinWidth: 10, Weight: 2, Filterable: true,
				Value: func(s catalog.Stream) string { return s.URL },
			},
			{
				ID: "active", Header: "Active", Width: 8, Sortable: true,
				Value:   func(s catalog.Stream) string { return yesNo(s.Active) },
				Compare: func(a, b catalog.Stream) int { return compareBool(a.Active, b.Active) },
			},
		}
	},
	bodies: map[string]table.BodyCellRenderer[catalog.Stream, string]{
		"group":  func(c streamCell) string { return tag(c.Row.Original.Group) },
		"active": func(c streamCell) string { return activeBadge(c.Row.Original.Active) },
	},
	expanded: func() table.ExpandedRowRenderer[catalog.Stream, string] {
		return func(row grid.Row[catalog.Stream, string], _ int) string {
			return jsonDetail(row.Original)
		}
	},
	rows:  func(s catalog.Snapshot) []catalog.Stream { return s.Streams },
	rowID: func(s catalog.Stream) string { return s.ID },
	key:   stringKey,
}
