package catalog

import (
	"time"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

type userCell = table.Cell[catalog.User, string]

var usersTable = definition[catalog.User, string]{
	name:  config.TableUsers,
	title: "Users",
	columns: func() []grid.Column[catalog.User] {
		return []grid.Column[catalog.User]{
			{
				ID: "username", Header: "Username", MinWidth: 10, Sortable: true, Filterable: true,
				Value: func(u catalog.User) string { return u.Username },
			},
			{
				ID: "email", Header: "Email", MinWidth: 12, Sortable: true, Filterable: true,
				Value: func(u catalog.User) string { return u.Email },
			},
			{
				ID: "role", Header: "Role", Width: 9, Sortable: true, Filterable: true,
				Value: func(u catalog.User) string { return u.Role.String() },
			},
			{
				ID: "active", Header: "Active", Width: 8, Sortable: true,
				Value:   func(u catalog.User) string { return yesNo(u.Active) },
				Compare: func(a, b catalog.User) int { return compareBool(a.Active, b.Active) },
			},
			{
				ID: "last_login", Header: "Last Login", Width: 14, Sortable: true,
				Value:   func(u catalog.User) string { return relTime(u.LastLogin) },
				Compare: func(a, b catalog.User) int { return compareTime(a.LastLogin, b.LastLogin) },
			},
		}
	},
	bodies: map[string]table.BodyCellRenderer[catalog.User, string]{
		"role":   func(c userCell) string { return roleBadge(c.Row.Original.Role) },
		"active": func(c userCell) string { return activeBadge(c.Row.Original.Active) },
	},
	expanded: func() table.ExpandedRowRenderer[catalog.User, string] {
		return func(row grid.Row[catalog.User, string], _ int) string {
			u := row.Original
			login := "never"
			if u.LastLogin != nil {
				login = u.LastLogin.Format(time.RFC3339) + " (" + relTime(u.LastLogin) + ")"
			}
			return detail(
				[2]string{"ID", u.ID},
				[2]string{"Username", u.Username},
				[2]string{"Email", u.Email},
				[2]string{"Role", roleBadge(u.Role)},
				[2]string{"Active", yesNo(u.Active)},
				[2]string{"Last login", login},
			)
		}
	},
	rows:  func(s catalog.Snapshot) []catalog.User { return s.Users },
	rowID: func(u catalog.User) string { return u.ID },
	key:   stringKey,
}
