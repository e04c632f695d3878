// Package modkeys tracks whether the Shift modifier is held across the whole
// program. One Tracker is created at the application root and shared by every
// mounted table; tables only read it.
package modkeys

import "sync"

// Kind is the type of a document-level input event.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
	Blur
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case Blur:
		return "blur"
	default:
		return "unknown"
	}
}

// KeyShift is the Key value carried by Shift key events.
const KeyShift = "shift"

// Event is a document-level input event.
type Event struct {
	Kind Kind
	Key  string
}

// Listener handles an Event.
type Listener func(Event)

// ListenerID identifies a registration on a Target.
type ListenerID uint64

// Target is a source of document-level events that listeners attach to.
type Target interface {
	Listen(kind Kind, fn Listener) ListenerID
	Unlisten(kind Kind, id ListenerID)
}

// Hub is the program-wide event target. The root model dispatches terminal
// key and focus messages into it.
type Hub struct {
	mu        sync.RWMutex
	next      ListenerID
	listeners map[Kind]map[ListenerID]Listener
}

var _ Target = (*Hub)(nil)

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		listeners: make(map[Kind]map[ListenerID]Listener),
	}
}

// Listen registers fn for events of kind.
func (h *Hub) Listen(kind Kind, fn Listener) ListenerID {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	if h.listeners[kind] == nil {
		h.listeners[kind] = make(map[ListenerID]Listener)
	}
	h.listeners[kind][h.next] = fn
	return h.next
}

// Unlisten removes a registration. Unknown ids are ignored.
func (h *Hub) Unlisten(kind Kind, id ListenerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners[kind], id)
}

// Dispatch delivers ev to every listener registered for its kind. Listeners
// run outside the lock and may register or unregister listeners.
func (h *Hub) Dispatch(ev Event) {
	h.mu.RLock()
	fns := make([]Listener, 0, len(h.listeners[ev.Kind]))
	for _, fn := range h.listeners[ev.Kind] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Count returns the number of listeners registered for kind.
func (h *Hub) Count(kind Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[kind])
}
