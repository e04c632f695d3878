package catalog

import (
	"cmp"
	"strconv"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

// channelRow joins a channel with its logo name and streams.
type channelRow struct {
	catalog.Channel
	Logo    string           `json:"logo,omitempty"`
	Streams []catalog.Stream `json:"streams,omitempty"`
}

func channelRows(s catalog.Snapshot) []channelRow {
	logos := s.LogoByID()
	streams := s.StreamByID()

	rows := make([]channelRow, len(s.Channels))
	for i, ch := range s.Channels {
		row := channelRow{Channel: ch}
		if l, ok := logos[ch.LogoID]; ok {
			row.Logo = l.Name
		}
		for _, id := range ch.StreamIDs {
			if st, ok := streams[id]; ok {
				row.Streams = append(row.Streams, st)
			}
		}
		rows[i] = row
	}
	return rows
}

var channelsTable = definition[channelRow, int64]{
	name:  config.TableChannels,
	title: "Channels",
	columns: func() []grid.Column[channelRow] {
		return []grid.Column[channelRow]{
			{
				ID: "number", Header: "#", Width: 6, Sortable: true, Align: grid.AlignRight,
				Value:   func(r channelRow) string { return formatNumber(r.Number) },
				Compare: func(a, b channelRow) int { return cmp.Compare(a.Number, b.Number) },
			},
			{
				ID: "name", Header: "Name", MinWidth: 12, Sortable: true, Filterable: true,
				Value: func(r channelRow) string { return r.Name },
			},
			{
				ID: "group", Header: "Group", Width: 14, Sortable: true, Filterable: true,
				Value: func(r channelRow) string { return r.Group },
			},
			{
				ID: "tvg_id", Header: "TVG ID", Width: 16, Sortable: true, Filterable: true,
				Value: func(r channelRow) string { return r.TVGID },
			},
			{
				ID: "logo", Header: "Logo", Width: 12, Sortable: true,
				Value: func(r channelRow) string { return r.Logo },
			},
			{
				ID: "streams", Header: "Streams", Width: 7, Sortable: true, Align: grid.AlignRight,
				Value:   func(r channelRow) string { return strconv.Itoa(len(r.Streams)) },
				Compare: func(a, b channelRow) int { return cmp.Compare(len(a.Streams), len(b.Streams)) },
			},
		}
	},
	bodies: map[string]table.BodyCellRenderer[channelRow, int64]{
		"group": func(c table.Cell[channelRow, int64]) string { return tag(c.Row.Original.Group) },
	},
	expanded: func() table.ExpandedRowRenderer[channelRow, int64] {
		return func(row grid.Row[channelRow, int64], _ int) string {
			return jsonDetail(row.Original)
		}
	},
	rows:  channelRows,
	rowID: func(r channelRow) int64 { return r.ID },
	key:   int64Key,
}
