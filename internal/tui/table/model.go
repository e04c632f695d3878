package table

import (
	"slices"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/modkeys"
	"github.com/hay-kot/tvconsole/internal/core/selection"
	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// Options configures a table.
type Options[T any, K comparable] struct {
	Columns []grid.Column[T]
	Data    []T
	RowID   func(T) K

	// AllRowIDs is the display order range selection and select-all work
	// on. When nil it is the filtered and sorted row order of the grid.
	AllRowIDs []K

	HeaderCellRenderers map[string]HeaderCellRenderer[T]
	BodyCellRenderers   map[string]BodyCellRenderer[T, K]
	ExpandedRowRenderer ExpandedRowRenderer[T, K]
	// ExpandedRowHeight fixes the line count of expanded content. When nil
	// the rendered content decides.
	ExpandedRowHeight func(row grid.Row[T, K]) int

	OnRowSelectionChange func(ids []K)
	OnRowExpandChange    func(expanded []K)

	// Modifiers is the shared Shift tracker. It may be nil.
	Modifiers *modkeys.Tracker
	KeyMap    *KeyMap
	Logger    zerolog.Logger

	Width  int
	Height int

	Sort             grid.SortState
	Filter           string
	PageSize         int
	ManualSorting    bool
	ManualFiltering  bool
	ManualPagination bool
}

// Model is a mounted table. Selection, anchor and expansion live as long as
// the model and survive data refreshes.
type Model[T any, K comparable] struct {
	grid      *grid.Instance[T, K]
	store     *selection.Store[K]
	renderers []renderer[T, K]
	allRowIDs []K

	expandedRender ExpandedRowRenderer[T, K]
	expandedHeight func(grid.Row[T, K]) int
	onExpand       func([]K)

	mods   *modkeys.Tracker
	keys   KeyMap
	logger zerolog.Logger

	filter    textinput.Model
	filtering bool

	cursor  int
	offset  int
	width   int
	height  int
	originX int
	originY int
	focused bool
}

// New builds a table from opts.
func New[T any, K comparable](opts Options[T, K]) *Model[T, K] {
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	store := selection.NewStore[K](opts.Logger)
	store.OnChange(opts.OnRowSelectionChange)

	fi := textinput.New()
	fi.Prompt = styles.IconFilter + " "
	fiStyles := textinput.DefaultStyles(true)
	fiStyles.Focused.Prompt = styles.FilterPromptStyle
	fiStyles.Cursor.Color = styles.ColorPrimary
	fi.SetStyles(fiStyles)
	fi.SetValue(opts.Filter)

	m := &Model[T, K]{
		grid: grid.New(grid.Options[T, K]{
			Columns:          opts.Columns,
			Data:             opts.Data,
			RowID:            opts.RowID,
			Sort:             opts.Sort,
			Filter:           opts.Filter,
			PageSize:         opts.PageSize,
			ManualSorting:    opts.ManualSorting,
			ManualFiltering:  opts.ManualFiltering,
			ManualPagination: opts.ManualPagination,
		}),
		store:          store,
		renderers:      resolveRenderers(opts.Columns, opts.HeaderCellRenderers, opts.BodyCellRenderers),
		allRowIDs:      opts.AllRowIDs,
		expandedRender: opts.ExpandedRowRenderer,
		expandedHeight: opts.ExpandedRowHeight,
		onExpand:       opts.OnRowExpandChange,
		mods:           opts.Modifiers,
		keys:           keys,
		logger:         opts.Logger,
		filter:         fi,
		width:          opts.Width,
		height:         opts.Height,
	}

	// An invalid initial sort is dropped by the grid.
	m.grid.SetSort(opts.Sort)
	m.mutate(func() {})
	return m
}

// Update handles key and mouse input. Keys are ignored unless the table is
// focused.
func (m *Model[T, K]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focused {
			return nil
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		m.handleClick(msg.Mouse())
		return nil
	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			m.move(-1)
		case tea.MouseWheelDown:
			m.move(1)
		}
		return nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model[T, K]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.bodyHeight())
	case key.Matches(msg, m.keys.Home):
		m.move(-len(m.grid.RowModel()))
	case key.Matches(msg, m.keys.End):
		m.move(len(m.grid.RowModel()))
	case key.Matches(msg, m.keys.RangeTo):
		m.toggleCursor(true)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCursor(m.shiftActive())
	case key.Matches(msg, m.keys.ExtendUp):
		m.extend(-1)
	case key.Matches(msg, m.keys.ExtendDown):
		m.extend(1)
	case key.Matches(msg, m.keys.ToggleAll):
		m.store.ToggleAll(len(m.store.Order()))
	case key.Matches(msg, m.keys.Clear):
		if m.grid.Filter() != "" {
			m.SetFilter("")
			return nil
		}
		m.store.Clear()
	case key.Matches(msg, m.keys.Expand):
		if id, ok := m.CursorID(); ok {
			m.toggleExpand(id)
		}
	case key.Matches(msg, m.keys.Collapse):
		if id, ok := m.CursorID(); ok && m.store.IsExpanded(id) {
			m.toggleExpand(id)
		}
	case key.Matches(msg, m.keys.SortNext):
		m.cycleSort()
	case key.Matches(msg, m.keys.SortFlip):
		if s := m.grid.Sort(); s.ColumnID != "" {
			m.SetSort(grid.SortState{ColumnID: s.ColumnID, Desc: !s.Desc})
		}
	case key.Matches(msg, m.keys.Filter):
		return m.StartFilter()
	case key.Matches(msg, m.keys.PrevPage):
		m.setPage(m.grid.Page() - 1)
	case key.Matches(msg, m.keys.NextPage):
		m.setPage(m.grid.Page() + 1)
	}
	return nil
}

func (m *Model[T, K]) updateFilter(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.SetFilter("")
		return nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if q := m.filter.Value(); q != m.grid.Filter() {
		m.mutate(func() { m.grid.SetFilter(q) })
	}
	return cmd
}

func (m *Model[T, K]) handleClick(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft {
		return
	}
	hit, ok := m.hitTest(mouse.X-m.originX, mouse.Y-m.originY)
	if !ok {
		return
	}

	switch hit.area {
	case areaHeader:
		if hit.col < 0 {
			return
		}
		if m.rendererAt(hit.col).kind == renderSelect {
			m.store.ToggleAll(len(m.store.Order()))
			return
		}
		if col := m.grid.Columns()[hit.col]; col.Sortable {
			m.mutate(func() { m.grid.ToggleSort(col.ID) })
		}
	case areaRow:
		m.cursor = hit.row
		id := m.grid.RowModel()[hit.row].ID
		switch m.rendererAt(hit.col).kind {
		case renderSelect:
			m.store.Toggle(id, mouse.Mod.Contains(tea.ModShift) || m.shiftActive())
		case renderExpand:
			m.toggleExpand(id)
		}
		m.scroll()
	case areaDetail:
		m.cursor = hit.row
		m.scroll()
	}
}

// StartFilter focuses the filter input.
func (m *Model[T, K]) StartFilter() tea.Cmd {
	m.filtering = true
	m.filter.SetValue(m.grid.Filter())
	m.filter.CursorEnd()
	return m.filter.Focus()
}

// HasEditorFocus reports whether the filter input is taking key presses.
func (m *Model[T, K]) HasEditorFocus() bool {
	return m.filtering
}

// Focus makes the table respond to keys.
func (m *Model[T, K]) Focus() {
	m.focused = true
}

// Blur stops the table from responding to keys.
func (m *Model[T, K]) Blur() {
	m.focused = false
}

// Focused reports whether the table responds to keys.
func (m *Model[T, K]) Focused() bool {
	return m.focused
}

// SetSize sets the outer size of the table in cells.
func (m *Model[T, K]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.filter.SetWidth(max(width-4, 1))
	m.scroll()
}

// SetOrigin records where the table is drawn on screen so mouse positions
// can be mapped to cells.
func (m *Model[T, K]) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// SetData replaces the rows and, optionally, the display order. Selection,
// anchor, expansion, sort and filter are kept; the cursor stays on the same
// row when it still exists.
func (m *Model[T, K]) SetData(data []T, allRowIDs []K) {
	m.mutate(func() {
		m.grid.SetData(data)
		m.allRowIDs = allRowIDs
	})
}

// Sort returns the active sort.
func (m *Model[T, K]) Sort() grid.SortState {
	return m.grid.Sort()
}

// SetSort sorts by s.
func (m *Model[T, K]) SetSort(s grid.SortState) {
	m.mutate(func() { m.grid.SetSort(s) })
}

// Filter returns the active filter query.
func (m *Model[T, K]) Filter() string {
	return m.grid.Filter()
}

// SetFilter filters rows by q.
func (m *Model[T, K]) SetFilter(q string) {
	m.filter.SetValue(q)
	m.mutate(func() { m.grid.SetFilter(q) })
}

// Selected returns the selected ids in display order.
func (m *Model[T, K]) Selected() []K {
	return m.store.SelectedIDs()
}

// IsSelected reports whether id is selected.
func (m *Model[T, K]) IsSelected(id K) bool {
	return m.store.IsSelected(id)
}

// Expanded returns the expanded ids (zero or one).
func (m *Model[T, K]) Expanded() []K {
	return m.store.Expanded()
}

// HeaderCheck returns the state of the select-all checkbox.
func (m *Model[T, K]) HeaderCheck() selection.CheckState {
	return m.store.HeaderCheck(len(m.store.Order()))
}

// Cursor returns the cursor position within the current page.
func (m *Model[T, K]) Cursor() int {
	return m.cursor
}

// CursorID returns the id of the row under the cursor.
func (m *Model[T, K]) CursorID() (K, bool) {
	rows := m.grid.RowModel()
	if m.cursor < 0 || m.cursor >= len(rows) {
		var zero K
		return zero, false
	}
	return rows[m.cursor].ID, true
}

// RowModel returns the rows of the current page.
func (m *Model[T, K]) RowModel() []grid.Row[T, K] {
	return m.grid.RowModel()
}

// RowCount returns the number of ids in the display order.
func (m *Model[T, K]) RowCount() int {
	return len(m.store.Order())
}

// KeyMap returns the table bindings.
func (m *Model[T, K]) KeyMap() KeyMap {
	return m.keys
}

func (m *Model[T, K]) shiftActive() bool {
	return m.mods != nil && m.mods.ShiftActive()
}

func (m *Model[T, K]) toggleCursor(shift bool) {
	if id, ok := m.CursorID(); ok {
		m.store.Toggle(id, shift)
	}
}

// extend moves the cursor and selects the range from the anchor to the new
// row. Without an anchor the row being left becomes one.
func (m *Model[T, K]) extend(delta int) {
	from, ok := m.CursorID()
	if !ok {
		return
	}
	m.move(delta)
	to, _ := m.CursorID()
	if to == from {
		return
	}
	if _, hasAnchor := m.store.Anchor(); !hasAnchor && !m.store.IsSelected(from) {
		m.store.Toggle(from, false)
	}
	m.store.Toggle(to, true)
}

func (m *Model[T, K]) toggleExpand(id K) {
	if !m.expandable() {
		return
	}
	expanded := m.store.ToggleExpand(id)
	if m.onExpand != nil {
		m.onExpand(expanded)
	}
	m.scroll()
}

func (m *Model[T, K]) expandable() bool {
	for _, r := range m.renderers {
		if r.kind == renderExpand {
			return true
		}
	}
	return false
}

// cycleSort moves the sort to the next sortable column, ending unsorted.
func (m *Model[T, K]) cycleSort() {
	cols := m.grid.SortableColumns()
	if len(cols) == 0 {
		return
	}
	i := slices.Index(cols, m.grid.Sort().ColumnID)
	next := grid.SortState{}
	if i+1 < len(cols) {
		next.ColumnID = cols[i+1]
	}
	m.SetSort(next)
}

func (m *Model[T, K]) setPage(p int) {
	if p < 0 || p >= m.grid.PageCount() {
		return
	}
	m.grid.SetPage(p)
	m.cursor = 0
	m.offset = 0
	m.scroll()
}

func (m *Model[T, K]) move(delta int) {
	n := len(m.grid.RowModel())
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.scroll()
}

// mutate runs fn, then re-derives the display order and keeps the cursor on
// the row it was on.
func (m *Model[T, K]) mutate(fn func()) {
	prev, hadCursor := m.CursorID()
	fn()

	m.store.SetOrder(m.order())

	rows := m.grid.RowModel()
	if hadCursor {
		if i := slices.IndexFunc(rows, func(r grid.Row[T, K]) bool { return r.ID == prev }); i >= 0 {
			m.cursor = i
		}
	}
	m.cursor = min(max(m.cursor, 0), max(len(rows)-1, 0))
	m.scroll()
}

func (m *Model[T, K]) order() []K {
	if m.allRowIDs != nil {
		return m.allRowIDs
	}
	rows := m.grid.OrderedRows()
	ids := make([]K, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

// scroll moves the viewport so the cursor row is visible.
func (m *Model[T, K]) scroll() {
	m.offset = m.layout().start
}
