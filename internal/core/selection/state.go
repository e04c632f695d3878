package selection

// Kind identifies a selection or expansion event.
type Kind int

const (
	KindToggle Kind = iota
	KindSelectAll
	KindClear
	KindSetExplicit
	KindToggleExpand
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindSelectAll:
		return "select-all"
	case KindClear:
		return "clear"
	case KindSetExplicit:
		return "set-explicit"
	case KindToggleExpand:
		return "toggle-expand"
	default:
		return "unknown"
	}
}

// Event is a single user intent applied through Reduce.
type Event[K comparable] struct {
	Kind  Kind
	ID    K
	IDs   []K
	Shift bool
}

// Toggle is a click on a row checkbox. shift selects the contiguous range
// between the anchor and id.
func Toggle[K comparable](id K, shift bool) Event[K] {
	return Event[K]{Kind: KindToggle, ID: id, Shift: shift}
}

// SelectAll selects every id in the display order.
func SelectAll[K comparable]() Event[K] {
	return Event[K]{Kind: KindSelectAll}
}

// Clear empties the selection.
func Clear[K comparable]() Event[K] {
	return Event[K]{Kind: KindClear}
}

// SetExplicit replaces the selection with ids.
func SetExplicit[K comparable](ids ...K) Event[K] {
	return Event[K]{Kind: KindSetExplicit, IDs: ids}
}

// ToggleExpand expands id (collapsing any other row) or collapses it when it
// is already the expanded row.
func ToggleExpand[K comparable](id K) Event[K] {
	return Event[K]{Kind: KindToggleExpand, ID: id}
}

// State is the per-table selection and expansion state. Expanded never holds
// more than one id.
type State[K comparable] struct {
	Selected  Set[K]
	Anchor    K
	HasAnchor bool
	Expanded  []K
}

// NewState returns the empty state a table starts with.
func NewState[K comparable]() State[K] {
	return State[K]{Selected: NewSet[K]()}
}

// IsExpanded reports whether id is the expanded row.
func (s State[K]) IsExpanded(id K) bool {
	return len(s.Expanded) == 1 && s.Expanded[0] == id
}

// Reduce applies ev to s using order as the current display order of row ids
// and returns the next state. s is not modified. The returned bool reports
// whether the selection was written, which is when change listeners fire.
//
// Ids that order does not contain never cause a failure: a shift-click whose
// row or anchor is missing from order falls back to a plain toggle.
func Reduce[K comparable](s State[K], ev Event[K], order []K) (State[K], bool) {
	next := State[K]{
		Selected:  s.Selected.Clone(),
		Anchor:    s.Anchor,
		HasAnchor: s.HasAnchor,
		Expanded:  append([]K(nil), s.Expanded...),
	}

	switch ev.Kind {
	case KindToggle:
		if ev.Shift && s.HasAnchor {
			if ids, ok := rangeBetween(order, s.Anchor, ev.ID); ok {
				for _, id := range ids {
					next.Selected.add(id)
				}
				next.Anchor = ev.ID
				return next, true
			}
		}
		if next.Selected.Has(ev.ID) {
			next.Selected.remove(ev.ID)
		} else {
			next.Selected.add(ev.ID)
		}
		next.Anchor = ev.ID
		next.HasAnchor = true
		return next, true

	case KindSelectAll:
		next.Selected = NewSet(order...)
		return next, true

	case KindClear:
		next.Selected = NewSet[K]()
		return next, true

	case KindSetExplicit:
		next.Selected = NewSet(ev.IDs...)
		return next, true

	case KindToggleExpand:
		if s.IsExpanded(ev.ID) {
			next.Expanded = nil
		} else {
			next.Expanded = []K{ev.ID}
		}
		// Expanding and collapsing both leave the row as the only selection.
		next.Selected = NewSet(ev.ID)
		return next, true
	}

	return next, false
}

// rangeBetween returns order[lo..hi] inclusive for the positions of a and b.
func rangeBetween[K comparable](order []K, a, b K) ([]K, bool) {
	ai, bi := indexOf(order, a), indexOf(order, b)
	if ai < 0 || bi < 0 {
		return nil, false
	}
	lo, hi := min(ai, bi), max(ai, bi)
	return order[lo : hi+1], true
}

func indexOf[K comparable](order []K, id K) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
