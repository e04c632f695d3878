package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers published events to subscribers on a single background
// goroutine started by Start. Publishing never blocks: when the buffer is
// full the event is dropped and OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is done.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func subscribeTyped[P any](bus *EventBus, event Event, fn func(P)) {
	bus.subscribe(event, func(payload any) {
		if p, ok := payload.(P); ok {
			fn(p)
		}
	})
}

// PublishCatalogRefreshed publishes a catalog.refreshed event.
func (bus *EventBus) PublishCatalogRefreshed(p CatalogRefreshedPayload) {
	bus.send(EventCatalogRefreshed, p)
}

// SubscribeCatalogRefreshed subscribes to catalog.refreshed events.
func (bus *EventBus) SubscribeCatalogRefreshed(fn func(CatalogRefreshedPayload)) {
	subscribeTyped(bus, EventCatalogRefreshed, fn)
}

// PublishCatalogRefreshFailed publishes a catalog.refresh-failed event.
func (bus *EventBus) PublishCatalogRefreshFailed(p CatalogRefreshFailedPayload) {
	bus.send(EventCatalogRefreshFailed, p)
}

// SubscribeCatalogRefreshFailed subscribes to catalog.refresh-failed events.
func (bus *EventBus) SubscribeCatalogRefreshFailed(fn func(CatalogRefreshFailedPayload)) {
	subscribeTyped(bus, EventCatalogRefreshFailed, fn)
}

// PublishCatalogSeeded publishes a catalog.seeded event.
func (bus *EventBus) PublishCatalogSeeded(p CatalogSeededPayload) {
	bus.send(EventCatalogSeeded, p)
}

// SubscribeCatalogSeeded subscribes to catalog.seeded events.
func (bus *EventBus) SubscribeCatalogSeeded(fn func(CatalogSeededPayload)) {
	subscribeTyped(bus, EventCatalogSeeded, fn)
}

// PublishNotificationPublished publishes a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished subscribes to notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	subscribeTyped(bus, EventNotificationPublished, fn)
}

// PublishRowExpanded publishes a row.expanded event.
func (bus *EventBus) PublishRowExpanded(p RowExpandedPayload) {
	bus.send(EventRowExpanded, p)
}

// SubscribeRowExpanded subscribes to row.expanded events.
func (bus *EventBus) SubscribeRowExpanded(fn func(RowExpandedPayload)) {
	subscribeTyped(bus, EventRowExpanded, fn)
}

// PublishSelectionChanged publishes a selection.changed event.
func (bus *EventBus) PublishSelectionChanged(p SelectionChangedPayload) {
	bus.send(EventSelectionChanged, p)
}

// SubscribeSelectionChanged subscribes to selection.changed events.
func (bus *EventBus) SubscribeSelectionChanged(fn func(SelectionChangedPayload)) {
	subscribeTyped(bus, EventSelectionChanged, fn)
}

// PublishSelectionCopied publishes a selection.copied event.
func (bus *EventBus) PublishSelectionCopied(p SelectionCopiedPayload) {
	bus.send(EventSelectionCopied, p)
}

// SubscribeSelectionCopied subscribes to selection.copied events.
func (bus *EventBus) SubscribeSelectionCopied(fn func(SelectionCopiedPayload)) {
	subscribeTyped(bus, EventSelectionCopied, fn)
}

// PublishTuiStarted publishes a tui.started event.
func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

// SubscribeTuiStarted subscribes to tui.started events.
func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	subscribeTyped(bus, EventTuiStarted, fn)
}

// PublishTuiStopped publishes a tui.stopped event.
func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

// SubscribeTuiStopped subscribes to tui.stopped events.
func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	subscribeTyped(bus, EventTuiStopped, fn)
}
