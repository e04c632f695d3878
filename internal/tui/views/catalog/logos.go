package catalog

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

// logoRow is a logo with the names of the channels using it.
type logoRow struct {
	catalog.Logo
	Channels []string `json:"channels,omitempty"`
}

func logoRows(s catalog.Snapshot) []logoRow {
	used := make(map[int64][]string)
	for _, ch := range s.Channels {
		if ch.LogoID != 0 {
			used[ch.LogoID] = append(used[ch.LogoID], ch.Name)
		}
	}

	rows := make([]logoRow, len(s.Logos))
	for i, l := range s.Logos {
		rows[i] = logoRow{Logo: l, Channels: used[l.ID]}
	}
	return rows
}

var logosTable = definition[logoRow, int64]{
	name:  config.TableLogos,
	title: "Logos",
	columns: func() []grid.Column[logoRow] {
		return []grid.Column[logoRow]{
			{
				ID: "id", Header: "ID", Width: 5, Sortable: true, Align: grid.AlignRight,
				Value:   func(r logoRow) string { return strconv.FormatInt(r.ID, 10) },
				Compare: func(a, b logoRow) int { return cmp.Compare(a.ID, b.ID) },
			},
			{
				ID: "name", Header: "Name", MinWidth: 12, Sortable: true, Filterable: true,
				Value: func(r logoRow) string { return r.Name },
			},
			{
				ID: "url", Header: "URL", MinWidth: 10, Weight: 2, Filterable: true,
				Value: func(r logoRow) string { return r.URL },
			},
			{
				ID: "channels", Header: "Channels", Width: 8, Sortable: true, Align: grid.AlignRight,
				Value:   func(r logoRow) string { return strconv.Itoa(r.ChannelCount) },
				Compare: func(a, b logoRow) int { return cmp.Compare(a.ChannelCount, b.ChannelCount) },
			},
		}
	},
	expanded: func() table.ExpandedRowRenderer[logoRow, int64] {
		return func(row grid.Row[logoRow, int64], _ int) string {
			l := row.Original
			used := "none"
			if len(l.Channels) > 0 {
				used = strings.Join(l.Channels, ", ")
			}
			return detail(
				[2]string{"Name", l.Name},
				[2]string{"URL", l.URL},
				[2]string{"Used by", used},
			)
		}
	},
	rows:  logoRows,
	rowID: func(r logoRow) int64 { return r.ID },
	key:   int64Key,
}
