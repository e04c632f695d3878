package tui

import (
	"context"
	"slices"

	catalogview "github.com/hay-kot/tvconsole/internal/tui/views/catalog"
)

const activeTabKey = "active_tab"

// restoreViewState applies the persisted active tab and per-table sort and
// filter. Missing keys leave the configured defaults in place.
func (m *Model) restoreViewState() {
	ctx, cancel := context.WithTimeout(context.Background(), kvTimeout)
	defer cancel()

	for _, t := range m.tabs {
		v, err := m.tableState.Get(ctx, t.Name())
		if err != nil {
			continue
		}
		t.RestoreViewState(v)
	}

	name := m.consoleState.GetOr(ctx, activeTabKey, "")
	if i := slices.IndexFunc(m.tabs, func(t catalogview.Tab) bool { return t.Name() == name }); i >= 0 {
		m.active = i
	}
}

func (m *Model) saveViewState() {
	if m.tableState == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kvTimeout)
	defer cancel()

	for _, t := range m.tabs {
		if err := m.tableState.Set(ctx, t.Name(), t.ViewState()); err != nil {
			m.logger.Warn().Err(err).Str("table", t.Name()).Msg("save view state")
		}
	}

	// Drop state saved for tables the console no longer shows.
	stored, err := m.tableState.Keys(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("list view state")
	}
	for _, name := range stored {
		if slices.ContainsFunc(m.tabs, func(t catalogview.Tab) bool { return t.Name() == name }) {
			continue
		}
		if err := m.tableState.Delete(ctx, name); err != nil {
			m.logger.Warn().Err(err).Str("table", name).Msg("drop stale view state")
		}
	}
	if err := m.consoleState.Set(ctx, activeTabKey, m.ActiveTable()); err != nil {
		m.logger.Warn().Err(err).Msg("save active tab")
	}
}
