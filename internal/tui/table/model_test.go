package table

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/modkeys"
	"github.com/hay-kot/tvconsole/internal/core/selection"
	"github.com/hay-kot/tvconsole/pkg/tuitest"
)

type channel struct {
	id   int
	name string
}

func fixture() []channel {
	return []channel{
		{1, "ABC"},
		{2, "BBC"},
		{3, "CNN"},
		{4, "DSC"},
		{5, "ESPN"},
	}
}

func channelColumns() []grid.Column[channel] {
	return []grid.Column[channel]{
		SelectColumn[channel](),
		ExpandColumn[channel](),
		{
			ID: "name", Header: "Name", Sortable: true, Filterable: true,
			Value: func(c channel) string { return c.name },
		},
	}
}

// Column x positions for a table at origin (0, 0): the select checkbox
// starts after the gutter, the disclosure after the checkbox and a gap.
const (
	selectX = gutterWidth
	expandX = gutterWidth + selectColumnWidth + 1
)

func newTable(t *testing.T, mutators ...func(*Options[channel, int])) *Model[channel, int] {
	t.Helper()
	opts := Options[channel, int]{
		Columns: channelColumns(),
		Data:    fixture(),
		RowID:   func(c channel) int { return c.id },
		ExpandedRowRenderer: func(r grid.Row[channel, int], _ int) string {
			return "detail " + r.Original.name
		},
		Logger: zerolog.Nop(),
		Width:  40,
		Height: 12,
	}
	for _, fn := range mutators {
		fn(&opts)
	}
	m := New(opts)
	m.Focus()
	return m
}

func send(m *Model[channel, int], msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func space() tea.Msg {
	return tuitest.KeyCode(tea.KeySpace)
}

func shiftSpace() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Mod: tea.ModShift})
}

// rowY is the screen line of row i when nothing above it is expanded.
func rowY(i int) int {
	return 1 + i
}

func TestModel_SpaceTogglesTwice(t *testing.T) {
	m := newTable(t)

	send(m, tuitest.KeyDown(), tuitest.KeyDown(), space())
	assert.Equal(t, []int{3}, m.Selected())

	send(m, space())
	assert.Empty(t, m.Selected())
}

func TestModel_ShiftSpaceSelectsRange(t *testing.T) {
	m := newTable(t)

	send(m, tuitest.KeyDown(), space())
	send(m, tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown(), shiftSpace())

	assert.Equal(t, []int{2, 3, 4, 5}, m.Selected())
	anchor, ok := m.store.Anchor()
	require.True(t, ok)
	assert.Equal(t, 5, anchor)
}

func TestModel_TrackerShiftTurnsToggleIntoRange(t *testing.T) {
	hub := modkeys.NewHub()
	tracker := modkeys.NewTracker(nil, zerolog.Nop())
	detach := tracker.Attach(hub)
	defer detach()

	m := newTable(t, func(o *Options[channel, int]) { o.Modifiers = tracker })

	send(m, space())
	send(m, tuitest.KeyDown(), tuitest.KeyDown())

	hub.Dispatch(modkeys.Event{Kind: modkeys.KeyDown, Key: modkeys.KeyShift})
	send(m, space())
	assert.Equal(t, []int{1, 2, 3}, m.Selected())

	// Focus lost while Shift is held: the key-up never arrives.
	hub.Dispatch(modkeys.Event{Kind: modkeys.Blur})
	assert.False(t, tracker.ShiftActive())

	send(m, space())
	assert.Equal(t, []int{1, 2}, m.Selected(), "plain toggle after blur")
}

func TestModel_ClickRangePreservesOutsideSelection(t *testing.T) {
	m := newTable(t)

	send(m,
		tuitest.Click(selectX, rowY(4), false),
		tuitest.Click(selectX, rowY(0), false),
	)
	require.Equal(t, []int{1, 5}, m.Selected())

	send(m, tuitest.Click(selectX, rowY(2), true))
	assert.Equal(t, []int{1, 2, 3, 5}, m.Selected())
}

func TestModel_ClickHonoursOrigin(t *testing.T) {
	m := newTable(t)
	m.SetOrigin(5, 3)

	send(m, tuitest.Click(5+selectX, 3+rowY(1), false))
	assert.Equal(t, []int{2}, m.Selected())
	assert.Equal(t, 1, m.Cursor())

	send(m, tuitest.Click(0, 0, false))
	assert.Equal(t, []int{2}, m.Selected(), "click above the table is ignored")
	assert.Equal(t, 1, m.Cursor())
}

func TestModel_HeaderCheckbox(t *testing.T) {
	m := newTable(t)
	header := func() string { return tuitest.Lines(m.View())[0] }

	assert.Contains(t, header(), "[ ]")

	send(m, tuitest.Click(selectX, 0, false))
	assert.Equal(t, selection.Checked, m.HeaderCheck())
	assert.Len(t, m.Selected(), 5)
	assert.Contains(t, header(), "[x]")

	send(m, tuitest.Click(selectX, rowY(1), false))
	assert.Equal(t, selection.Indeterminate, m.HeaderCheck())
	assert.Contains(t, header(), "[-]")

	send(m, tuitest.Click(selectX, 0, false))
	assert.Equal(t, selection.Checked, m.HeaderCheck(), "indeterminate header selects all")

	send(m, tuitest.KeyPress('a'))
	assert.Equal(t, selection.Unchecked, m.HeaderCheck())
	assert.Empty(t, m.Selected())
}

func TestModel_ExpandReplacesSelection(t *testing.T) {
	var expandCalls [][]int
	m := newTable(t, func(o *Options[channel, int]) {
		o.OnRowExpandChange = func(ids []int) { expandCalls = append(expandCalls, ids) }
	})

	send(m,
		tuitest.Click(selectX, rowY(0), false),
		tuitest.Click(selectX, rowY(1), false),
		tuitest.Click(selectX, rowY(2), false),
	)
	require.Equal(t, []int{1, 2, 3}, m.Selected())

	send(m, tuitest.KeyDown(), tuitest.KeyEnter())
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, []int{4}, m.Expanded())
	assert.Equal(t, []int{4}, m.Selected())

	lines := tuitest.Lines(m.View())
	assert.Contains(t, lines[rowY(3)], "DSC")
	assert.Contains(t, lines[rowY(3)], "▾")
	assert.Contains(t, lines[rowY(3)+1], "detail DSC", "content sits directly under its row")
	assert.Contains(t, lines[rowY(3)+2], "ESPN")

	send(m, tuitest.KeyEnter())
	assert.Empty(t, m.Expanded())
	assert.Equal(t, []int{4}, m.Selected(), "collapse selects only the collapsed row")

	assert.Equal(t, [][]int{{4}, nil}, expandCalls)
}

func TestModel_ClickDisclosureExpands(t *testing.T) {
	m := newTable(t)

	send(m, tuitest.Click(expandX, rowY(1), false))
	assert.Equal(t, []int{2}, m.Expanded())
	assert.Equal(t, []int{2}, m.Selected())

	// The detail line of row 2 now occupies rowY(2).
	send(m, tuitest.Click(expandX, rowY(2), false))
	assert.Equal(t, []int{2}, m.Expanded(), "detail lines are not disclosure cells")
	assert.Equal(t, 1, m.Cursor())

	send(m, tuitest.Click(expandX, rowY(3), false))
	assert.Equal(t, []int{3}, m.Expanded(), "expanding another row replaces the first")
}

func TestModel_ExpandWithoutColumnIsNoop(t *testing.T) {
	m := newTable(t, func(o *Options[channel, int]) {
		o.Columns = []grid.Column[channel]{channelColumns()[0], channelColumns()[2]}
	})

	send(m, tuitest.KeyEnter())
	assert.Empty(t, m.Expanded())
	assert.Empty(t, m.Selected())
}

func TestModel_ExpandedRowHeight(t *testing.T) {
	m := newTable(t, func(o *Options[channel, int]) {
		o.ExpandedRowHeight = func(grid.Row[channel, int]) int { return 3 }
	})

	send(m, tuitest.KeyEnter())
	lines := tuitest.Lines(m.View())
	assert.Contains(t, lines[rowY(0)+1], "detail ABC")
	assert.Contains(t, lines[rowY(0)+4], "BBC", "three detail lines precede the next row")
}

func TestModel_SetDataKeepsState(t *testing.T) {
	m := newTable(t)
	send(m, tuitest.KeyDown(), space(), tuitest.KeyDown(), tuitest.KeyDown(), space())
	require.Equal(t, []int{2, 4}, m.Selected())
	require.Equal(t, 3, m.Cursor())

	data := fixture()
	data = append([]channel{{6, "AMC"}}, data...)
	m.SetData(data, nil)

	assert.Equal(t, []int{2, 4}, m.Selected())
	assert.Equal(t, 4, m.Cursor(), "cursor follows its row")
	id, ok := m.CursorID()
	require.True(t, ok)
	assert.Equal(t, 4, id)
	assert.Equal(t, 6, m.RowCount())
}

func TestModel_StaleAnchorFallsBackToToggle(t *testing.T) {
	m := newTable(t)
	send(m, tuitest.Click(selectX, rowY(1), false))

	data := fixture()
	m.SetData(append(data[:1:1], data[2:]...), nil)

	// Row 4 is now third; the anchor (row 2) is gone.
	assert.NotPanics(t, func() {
		send(m, tuitest.Click(selectX, rowY(2), true))
	})
	assert.ElementsMatch(t, []int{2, 4}, m.Selected())
}

func TestModel_RangeUsesSortedOrder(t *testing.T) {
	m := newTable(t)

	send(m, tuitest.KeyPress('s'), tuitest.KeyPress('S'))
	assert.Equal(t, grid.SortState{ColumnID: "name", Desc: true}, m.Sort())

	send(m,
		tuitest.Click(selectX, rowY(0), false),
		tuitest.Click(selectX, rowY(2), true),
	)
	assert.Equal(t, []int{5, 4, 3}, m.Selected())
	assert.Contains(t, tuitest.StripANSI(m.View()), "sort -name")

	send(m, tuitest.KeyPress('s'))
	assert.Equal(t, grid.SortState{}, m.Sort(), "cycling past the last column clears the sort")
}

func TestModel_HeaderClickSorts(t *testing.T) {
	m := newTable(t)
	nameX := expandX + expandColumnWidth + 1

	send(m, tuitest.Click(nameX, 0, false))
	assert.Equal(t, grid.SortState{ColumnID: "name"}, m.Sort())
	send(m, tuitest.Click(nameX, 0, false))
	assert.Equal(t, grid.SortState{ColumnID: "name", Desc: true}, m.Sort())
	assert.Contains(t, tuitest.Lines(m.View())[0], "Name ▼")
}

func TestModel_FilterKeepsSelection(t *testing.T) {
	m := newTable(t)
	send(m, space())

	send(m, tuitest.KeyPress('/'))
	require.True(t, m.HasEditorFocus())
	send(m, tuitest.KeyPress('e'), tuitest.KeyPress('s'), tuitest.KeyEnter())

	assert.False(t, m.HasEditorFocus())
	assert.Equal(t, "es", m.Filter())
	require.Len(t, m.RowModel(), 1)
	assert.Equal(t, 5, m.RowModel()[0].ID)
	assert.Equal(t, []int{1}, m.Selected(), "selection outlives filtering")

	send(m, tuitest.KeyEsc())
	assert.Empty(t, m.Filter())
	assert.Len(t, m.RowModel(), 5)
	assert.Equal(t, []int{1}, m.Selected(), "first esc clears the filter only")

	send(m, tuitest.KeyEsc())
	assert.Empty(t, m.Selected())
}

func TestModel_FilterNoMatches(t *testing.T) {
	m := newTable(t)
	m.SetFilter("zzz")

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "No matching rows")
	assert.Contains(t, out, "/ zzz")
}

func TestModel_OnRowSelectionChange(t *testing.T) {
	var calls [][]int
	m := newTable(t, func(o *Options[channel, int]) {
		o.OnRowSelectionChange = func(ids []int) { calls = append(calls, ids) }
	})

	send(m, space(), tuitest.KeyPress('a'), tuitest.KeyPress('a'))

	require.Len(t, calls, 3)
	assert.Equal(t, []int{1}, calls[0])
	assert.Equal(t, []int{1, 2, 3, 4, 5}, calls[1])
	assert.Empty(t, calls[2])
}

func TestModel_ExtendSelectsFromCursor(t *testing.T) {
	m := newTable(t)

	send(m, tuitest.KeyDown())
	send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyDown, Mod: tea.ModShift}))
	send(m, tea.KeyPressMsg(tea.Key{Code: tea.KeyDown, Mod: tea.ModShift}))

	assert.Equal(t, []int{2, 3, 4}, m.Selected())
	assert.Equal(t, 3, m.Cursor())
}

func TestModel_Pagination(t *testing.T) {
	m := newTable(t, func(o *Options[channel, int]) { o.PageSize = 2 })

	send(m, tuitest.KeyPress(']'))
	rows := m.RowModel()
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].ID)
	assert.Contains(t, tuitest.StripANSI(m.View()), "page 2/3")

	send(m, tuitest.KeyPress('a'))
	assert.Len(t, m.Selected(), 5, "select all spans every page")

	send(m, tuitest.KeyPress('['), tuitest.KeyPress('['))
	assert.Equal(t, 1, m.RowModel()[0].ID)
}

func TestModel_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newTable(t)
	m.Blur()

	send(m, space(), tuitest.KeyDown())
	assert.Empty(t, m.Selected())
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_ViewportFollowsCursor(t *testing.T) {
	m := newTable(t, func(o *Options[channel, int]) { o.Height = 4 })

	send(m, tuitest.KeyDown(), tuitest.KeyDown(), tuitest.KeyDown())
	lines := tuitest.Lines(m.View())

	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "CNN")
	assert.Contains(t, lines[2], "DSC")
	assert.Contains(t, lines[2], "┃")
}

func TestModel_Renderers(t *testing.T) {
	m := newTable(t, func(o *Options[channel, int]) {
		o.BodyCellRenderers = map[string]BodyCellRenderer[channel, int]{
			"name": func(c Cell[channel, int]) string {
				if c.Selected {
					return "*" + strings.ToLower(c.Row.Original.name)
				}
				return strings.ToLower(c.Row.Original.name)
			},
		}
		o.HeaderCellRenderers = map[string]HeaderCellRenderer[channel]{
			"name": func(grid.Header[channel]) string { return "CHANNEL" },
		}
	})
	send(m, space())

	lines := tuitest.Lines(m.View())
	assert.Contains(t, lines[0], "CHANNEL")
	assert.Contains(t, lines[rowY(0)], "*abc")
	assert.Contains(t, lines[rowY(1)], "bbc")
}

func TestResolveRenderers(t *testing.T) {
	cols := []grid.Column[channel]{
		SelectColumn[channel](),
		ExpandColumn[channel](),
		{ID: "name"},
		{ID: "number"},
	}
	body := func(Cell[channel, int]) string { return "" }

	got := resolveRenderers(cols,
		map[string]HeaderCellRenderer[channel]{"select": func(grid.Header[channel]) string { return "x" }},
		map[string]BodyCellRenderer[channel, int]{"select": body, "name": body},
	)

	kinds := make([]string, len(got))
	for i, r := range got {
		kinds[i] = r.kind.String()
	}
	assert.Equal(t, []string{"select", "expand", "domain", "fallback"}, kinds)
	assert.Nil(t, got[0].header, "built-in columns ignore domain header renderers")
}
