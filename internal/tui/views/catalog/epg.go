package catalog

import (
	"cmp"
	"strconv"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

type epgCell = table.Cell[catalog.EPGSource, int64]

var epgTable = definition[catalog.EPGSource, int64]{
	name:  config.TableEPG,
	title: "EPG",
	columns: func() []grid.Column[catalog.EPGSource] {
		return []grid.Column[catalog.EPGSource]{
			{
				ID: "id", Header: "ID", Width: 4, Sortable: true, Align: grid.AlignRight,
				Value:   func(e catalog.EPGSource) string { return strconv.FormatInt(e.ID, 10) },
				Compare: func(a, b catalog.EPGSource) int { return cmp.Compare(a.ID, b.ID) },
			},
			{
				ID: "name", Header: "Name", MinWidth: 12, Sortable: true, Filterable: true,
				Value: func(e catalog.EPGSource) string { return e.Name },
			},
			{
				ID: "type", Header: "Type", Width: 10, Sortable: true, Filterable: true,
				Value: func(e catalog.EPGSource) string { return e.Type },
			},
			{
				ID: "url", Header: "URL", MinWidth: 10, Weight: 2, Filterable: true,
				Value: func(e catalog.EPGSource) string { return e.URL },
			},
			{
				ID: "status", Header: "Status", Width: 9, Sortable: true, Filterable: true,
				Value: func(e catalog.EPGSource) string { return e.Status.String() },
			},
			{
				ID: "refreshed", Header: "Refreshed", Width: 14, Sortable: true,
				Value:   func(e catalog.EPGSource) string { return relTime(e.RefreshedAt) },
				Compare: func(a, b catalog.EPGSource) int { return compareTime(a.RefreshedAt, b.RefreshedAt) },
			},
		}
	},
	bodies: map[string]table.BodyCellRenderer[catalog.EPGSource, int64]{
		"status": func(c epgCell) string { return statusBadge(c.Row.Original.Status) },
	},
	expanded: func() table.ExpandedRowRenderer[catalog.EPGSource, int64] {
		md := newMarkdown()
		return func(row grid.Row[catalog.EPGSource, int64], width int) string {
			e := row.Original
			head := detail(
				[2]string{"Name", e.Name},
				[2]string{"URL", e.URL},
				[2]string{"Status", statusBadge(e.Status)},
				[2]string{"Refreshed", relTime(e.RefreshedAt)},
			)
			if e.Notes == "" {
				return head
			}
			return head + "\n" + md.render(e.Notes, width)
		}
	},
	rows:  func(s catalog.Snapshot) []catalog.EPGSource { return s.EPGSources },
	rowID: func(e catalog.EPGSource) int64 { return e.ID },
	key:   int64Key,
}
