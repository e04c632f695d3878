// Package catalog builds the console's catalog tables: one table.Model per
// entity with its columns, cell renderers and expanded-row content.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/logging"
	"github.com/hay-kot/tvconsole/internal/core/modkeys"
	"github.com/hay-kot/tvconsole/internal/tui/table"
)

// ErrUnknownColumn is returned when a sort refers to a column the table does
// not have.
var ErrUnknownColumn = errors.New("unknown column")

// Tab is one catalog table as the console drives it.
type Tab interface {
	Name() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	SetOrigin(x, y int)
	Focus()
	Blur()
	HasEditorFocus() bool
	Apply(snap catalog.Snapshot)
	SelectedIDs() []string
	RowCount() int
	ViewState() ViewState
	RestoreViewState(v ViewState)
	KeyMap() table.KeyMap
}

// ViewState is the part of a tab persisted between runs.
type ViewState struct {
	Sort   string `json:"sort,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// Deps are the collaborators shared by every tab.
type Deps struct {
	Config    *config.Config
	Modifiers *modkeys.Tracker

	OnSelectionChange func(table string, ids []string)
	OnExpandChange    func(table string, id string)
}

// PlainOptions controls non-interactive rendering.
type PlainOptions struct {
	Width  int
	Sort   string
	Filter string
	Config *config.Config
}

// definition describes one catalog table.
type definition[T any, K comparable] struct {
	name    string
	title   string
	columns func() []grid.Column[T]
	bodies  map[string]table.BodyCellRenderer[T, K]
	// expanded returns a fresh renderer per tab so renderers may cache.
	expanded func() table.ExpandedRowRenderer[T, K]
	rows     func(catalog.Snapshot) []T
	rowID    func(T) K
	key      func(K) string
}

// registered is the type-erased view of a definition.
type registered interface {
	tableName() string
	columnIDs() []string
	newTab(deps Deps) Tab
	render(snap catalog.Snapshot, opts PlainOptions) (string, error)
	records(snap catalog.Snapshot, opts PlainOptions) ([]any, error)
}

var definitions = []registered{
	channelsTable,
	streamsTable,
	logosTable,
	usersTable,
	epgTable,
}

// Tabs builds every catalog tab in display order.
func Tabs(deps Deps) []Tab {
	tabs := make([]Tab, len(definitions))
	for i, d := range definitions {
		tabs[i] = d.newTab(deps)
	}
	return tabs
}

// ColumnIndex lists the configurable column ids of every table.
func ColumnIndex() config.Columns {
	out := make(config.Columns, len(definitions))
	for _, d := range definitions {
		out[d.tableName()] = d.columnIDs()
	}
	return out
}

// Render draws a table as plain text using the default cell renderers.
func Render(name string, snap catalog.Snapshot, opts PlainOptions) (string, error) {
	d, err := lookup(name)
	if err != nil {
		return "", err
	}
	return d.render(snap, opts)
}

// Records returns the filtered and sorted rows of a table.
func Records(name string, snap catalog.Snapshot, opts PlainOptions) ([]any, error) {
	d, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return d.records(snap, opts)
}

func lookup(name string) (registered, error) {
	for _, d := range definitions {
		if d.tableName() == name {
			return d, nil
		}
	}
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.tableName()
	}
	if s := config.Suggest(name, names); s != "" {
		return nil, fmt.Errorf("%w %q, did you mean %q?", config.ErrUnknownTable, name, s)
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownTable, name)
}

func (d definition[T, K]) tableName() string {
	return d.name
}

func (d definition[T, K]) columnIDs() []string {
	cols := d.columns()
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}

// configured applies hide patterns and width overrides.
func (d definition[T, K]) configured(tc config.TableConfig) []grid.Column[T] {
	var out []grid.Column[T]
	for _, c := range d.columns() {
		if tc.Hidden(c.ID) {
			continue
		}
		if w, ok := tc.Widths[c.ID]; ok {
			c.Width = w
		}
		out = append(out, c)
	}
	return out
}

func (d definition[T, K]) newTab(deps Deps) Tab {
	var (
		tc       config.TableConfig
		pageSize int
	)
	if deps.Config != nil {
		tc = deps.Config.Table(d.name)
		pageSize = deps.Config.TUI.PageSize
	}

	cols := append([]grid.Column[T]{table.SelectColumn[T](), table.ExpandColumn[T]()}, d.configured(tc)...)

	var expanded table.ExpandedRowRenderer[T, K]
	if d.expanded != nil {
		expanded = d.expanded()
	}

	t := &tab[T, K]{name: d.name, title: d.title, rows: d.rows, key: d.key}
	t.model = table.New(table.Options[T, K]{
		Columns:             cols,
		RowID:               d.rowID,
		BodyCellRenderers:   d.bodies,
		ExpandedRowRenderer: expanded,
		OnRowSelectionChange: func(ids []K) {
			if deps.OnSelectionChange != nil {
				deps.OnSelectionChange(d.name, keysOf(ids, d.key))
			}
		},
		OnRowExpandChange: func(ids []K) {
			if deps.OnExpandChange == nil {
				return
			}
			id := ""
			if len(ids) > 0 {
				id = d.key(ids[0])
			}
			deps.OnExpandChange(d.name, id)
		},
		Modifiers: deps.Modifiers,
		Logger:    logging.Table(d.name),
		Sort:      grid.ParseSort(tc.Sort),
		Filter:    tc.Filter,
		PageSize:  pageSize,
	})
	return t
}

func (d definition[T, K]) instance(snap catalog.Snapshot, opts PlainOptions) (*grid.Instance[T, K], error) {
	var tc config.TableConfig
	if opts.Config != nil {
		tc = opts.Config.Table(d.name)
	}
	cols := d.configured(tc)

	sort := grid.ParseSort(opts.Sort)
	if sort.ColumnID != "" && !slices.ContainsFunc(cols, func(c grid.Column[T]) bool { return c.ID == sort.ColumnID }) {
		if s := config.Suggest(sort.ColumnID, d.columnIDs()); s != "" {
			return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownColumn, sort.ColumnID, s)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, sort.ColumnID)
	}

	in := grid.New(grid.Options[T, K]{
		Columns: cols,
		Data:    d.rows(snap),
		RowID:   d.rowID,
		Filter:  opts.Filter,
	})
	in.SetSort(sort)
	return in, nil
}

func (d definition[T, K]) render(snap catalog.Snapshot, opts PlainOptions) (string, error) {
	in, err := d.instance(snap, opts)
	if err != nil {
		return "", err
	}

	headers := in.HeaderGroups(opts.Width)[0].Headers
	lines := make([]string, 0, len(in.RowModel())+1)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = grid.RenderHeader(h)
	}
	lines = append(lines, strings.TrimRight(strings.Join(cells, grid.Gap()), " "))

	for _, row := range in.RowModel() {
		for i, h := range headers {
			cells[i] = grid.RenderCell(h.Column, row, h.Width)
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, grid.Gap()), " "))
	}
	return strings.Join(lines, "\n"), nil
}

func (d definition[T, K]) records(snap catalog.Snapshot, opts PlainOptions) ([]any, error) {
	in, err := d.instance(snap, opts)
	if err != nil {
		return nil, err
	}
	rows := in.OrderedRows()
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r.Original
	}
	return out, nil
}

// tab adapts a table.Model to Tab.
type tab[T any, K comparable] struct {
	name  string
	title string
	model *table.Model[T, K]
	rows  func(catalog.Snapshot) []T
	key   func(K) string
}

func (t *tab[T, K]) Name() string                { return t.name }
func (t *tab[T, K]) Title() string               { return t.title }
func (t *tab[T, K]) Update(msg tea.Msg) tea.Cmd  { return t.model.Update(msg) }
func (t *tab[T, K]) View() string                { return t.model.View() }
func (t *tab[T, K]) SetSize(width, height int)   { t.model.SetSize(width, height) }
func (t *tab[T, K]) SetOrigin(x, y int)          { t.model.SetOrigin(x, y) }
func (t *tab[T, K]) Focus()                      { t.model.Focus() }
func (t *tab[T, K]) Blur()                       { t.model.Blur() }
func (t *tab[T, K]) HasEditorFocus() bool        { return t.model.HasEditorFocus() }
func (t *tab[T, K]) RowCount() int               { return t.model.RowCount() }
func (t *tab[T, K]) KeyMap() table.KeyMap        { return t.model.KeyMap() }
func (t *tab[T, K]) Apply(snap catalog.Snapshot) { t.model.SetData(t.rows(snap), nil) }
func (t *tab[T, K]) SelectedIDs() []string       { return keysOf(t.model.Selected(), t.key) }
func (t *tab[T, K]) Model() *table.Model[T, K]   { return t.model }

func (t *tab[T, K]) ViewState() ViewState {
	return ViewState{Sort: t.model.Sort().String(), Filter: t.model.Filter()}
}

func (t *tab[T, K]) RestoreViewState(v ViewState) {
	t.model.SetSort(grid.ParseSort(v.Sort))
	t.model.SetFilter(v.Filter)
}

func keysOf[K comparable](ids []K, key func(K) string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = key(id)
	}
	return out
}

func int64Key(id int64) string { return strconv.FormatInt(id, 10) }

func stringKey(id string) string { return id }
