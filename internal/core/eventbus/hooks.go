package eventbus

import "sync"

// hookSet is a list of hook functions that may grow while the bus is running.
type hookSet[F any] struct {
	mu  sync.RWMutex
	fns []F
}

func (h *hookSet[F]) add(fn F) {
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

// list returns a copy so hooks run without holding the lock.
func (h *hookSet[F]) list() []F {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]F, len(h.fns))
	copy(out, h.fns)
	return out
}

// hooks holds the lifecycle hooks and per-event drop counts of an EventBus.
type hooks struct {
	publish   hookSet[func(Event, any)]
	drop      hookSet[func(Event, any)]
	subscribe hookSet[func(Event)]
	panics    hookSet[func(Event, any, any)]

	dropMu  sync.Mutex
	dropped map[Event]int
}

// OnPublish registers a hook that fires after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) { bus.hooks.publish.add(fn) }

// OnDrop registers a hook that fires when an event is dropped because the
// buffer is full. Dropped already counts the event when the hook runs.
func (bus *EventBus) OnDrop(fn func(Event, any)) { bus.hooks.drop.add(fn) }

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *EventBus) OnSubscribe(fn func(Event)) { bus.hooks.subscribe.add(fn) }

// OnPanic registers a hook that fires when a subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) { bus.hooks.panics.add(fn) }

// Dropped returns how many events of each kind were dropped so far.
func (bus *EventBus) Dropped() map[Event]int {
	bus.hooks.dropMu.Lock()
	defer bus.hooks.dropMu.Unlock()
	out := make(map[Event]int, len(bus.hooks.dropped))
	for e, n := range bus.hooks.dropped {
		out[e] = n
	}
	return out
}

// send enqueues an event and fires hooks. Used by the typed Publish* methods.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range bus.hooks.publish.list() {
			fn(event, payload)
		}
	default:
		bus.hooks.dropMu.Lock()
		if bus.hooks.dropped == nil {
			bus.hooks.dropped = make(map[Event]int)
		}
		bus.hooks.dropped[event]++
		bus.hooks.dropMu.Unlock()

		for _, fn := range bus.hooks.drop.list() {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range bus.hooks.subscribe.list() {
		fn(event)
	}
}

// runOnPanic reports a subscriber panic. A panicking hook is ignored so the
// dispatch goroutine keeps running.
func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range bus.hooks.panics.list() {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}
