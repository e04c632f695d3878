package selection

import (
	"github.com/rs/zerolog"
)

// CheckState is the tri-state of a header checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

func (c CheckState) String() string {
	switch c {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// HeaderCheck derives the header checkbox state from the selection size and
// the number of rows in the table.
func HeaderCheck(selected, rowCount int) CheckState {
	switch {
	case rowCount > 0 && selected == rowCount:
		return Checked
	case selected > 0 && selected < rowCount:
		return Indeterminate
	default:
		return Unchecked
	}
}

// Store owns the state of one mounted table together with the display order
// the next event is evaluated against. It is driven from the Bubble Tea
// update loop and is not safe for concurrent mutation.
type Store[K comparable] struct {
	state    State[K]
	order    []K
	onChange []func([]K)
	logger   zerolog.Logger
}

// NewStore returns an empty store. A zero logger discards output.
func NewStore[K comparable](logger zerolog.Logger) *Store[K] {
	return &Store[K]{
		state:  NewState[K](),
		logger: logger,
	}
}

// OnChange registers fn to be called with the selected ids, in display order,
// after every selection write.
func (s *Store[K]) OnChange(fn func([]K)) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

// SetOrder replaces the display order. State is kept so selection and
// expansion survive data refreshes, sorting and filtering.
func (s *Store[K]) SetOrder(ids []K) {
	s.order = append(s.order[:0:0], ids...)
}

// Order returns the current display order.
func (s *Store[K]) Order() []K {
	return s.order
}

// State returns a copy of the current state.
func (s *Store[K]) State() State[K] {
	return State[K]{
		Selected:  s.state.Selected.Clone(),
		Anchor:    s.state.Anchor,
		HasAnchor: s.state.HasAnchor,
		Expanded:  append([]K(nil), s.state.Expanded...),
	}
}

// Dispatch applies ev and returns the resulting selection.
func (s *Store[K]) Dispatch(ev Event[K]) Set[K] {
	next, changed := Reduce(s.state, ev, s.order)
	s.state = next

	s.logger.Debug().
		Str("event", ev.Kind.String()).
		Interface("id", ev.ID).
		Bool("shift", ev.Shift).
		Int("selected", next.Selected.Len()).
		Int("expanded", len(next.Expanded)).
		Msg("selection transition")

	if changed {
		ids := next.Selected.Ordered(s.order)
		for _, fn := range s.onChange {
			fn(ids)
		}
	}
	return s.state.Selected
}

// Toggle handles a row checkbox click.
func (s *Store[K]) Toggle(id K, shift bool) Set[K] {
	return s.Dispatch(Toggle(id, shift))
}

// SelectAll selects every row in the display order. The anchor is unchanged.
func (s *Store[K]) SelectAll() Set[K] {
	return s.Dispatch(SelectAll[K]())
}

// Clear deselects everything. The anchor is unchanged.
func (s *Store[K]) Clear() Set[K] {
	return s.Dispatch(Clear[K]())
}

// SetExplicit replaces the selection with ids.
func (s *Store[K]) SetExplicit(ids ...K) Set[K] {
	return s.Dispatch(SetExplicit(ids...))
}

// ToggleExpand expands or collapses id. Expanding also makes id the only
// selected row.
func (s *Store[K]) ToggleExpand(id K) []K {
	s.Dispatch(ToggleExpand(id))
	return s.Expanded()
}

// ToggleAll is the header checkbox click: a fully checked header clears the
// selection, any other state selects every row.
func (s *Store[K]) ToggleAll(rowCount int) Set[K] {
	if s.HeaderCheck(rowCount) == Checked {
		return s.Clear()
	}
	return s.SelectAll()
}

// HeaderCheck returns the header checkbox state for a table of rowCount rows.
func (s *Store[K]) HeaderCheck(rowCount int) CheckState {
	return HeaderCheck(s.state.Selected.Len(), rowCount)
}

// Selected returns a copy of the selection.
func (s *Store[K]) Selected() Set[K] {
	return s.state.Selected.Clone()
}

// SelectedIDs returns the selection in display order.
func (s *Store[K]) SelectedIDs() []K {
	return s.state.Selected.Ordered(s.order)
}

// IsSelected reports whether id is selected.
func (s *Store[K]) IsSelected(id K) bool {
	return s.state.Selected.Has(id)
}

// Len returns the number of selected ids.
func (s *Store[K]) Len() int {
	return s.state.Selected.Len()
}

// Anchor returns the last clicked id.
func (s *Store[K]) Anchor() (K, bool) {
	return s.state.Anchor, s.state.HasAnchor
}

// Expanded returns the expanded ids (zero or one).
func (s *Store[K]) Expanded() []K {
	return append([]K(nil), s.state.Expanded...)
}

// IsExpanded reports whether id is the expanded row.
func (s *Store[K]) IsExpanded(id K) bool {
	return s.state.IsExpanded(id)
}
