package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	"github.com/hay-kot/tvconsole/internal/core/eventbus/testbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_DeliversInOrder(t *testing.T) {
	tb := testbus.New(t)

	tb.PublishSelectionChanged(eventbus.SelectionChangedPayload{Table: "channels", IDs: []string{"1"}})
	tb.PublishSelectionChanged(eventbus.SelectionChangedPayload{Table: "channels", IDs: []string{"1", "2"}})
	tb.PublishRowExpanded(eventbus.RowExpandedPayload{Table: "channels", RowID: "2"})

	tb.AssertPublished(t, eventbus.EventRowExpanded)
	got := testbus.Payloads[eventbus.SelectionChangedPayload](tb, eventbus.EventSelectionChanged)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1", "2"}, got[1].IDs)
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped []eventbus.Event
	bus.OnDrop(func(e eventbus.Event, _ any) { dropped = append(dropped, e) })

	bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	assert.Equal(t, []eventbus.Event{eventbus.EventTuiStopped}, dropped)

	bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	assert.Equal(t, map[eventbus.Event]int{eventbus.EventTuiStopped: 2}, bus.Dropped())
}

func TestEventBus_RecoversSubscriberPanic(t *testing.T) {
	bus := eventbus.New(4)

	panicked := make(chan any, 1)
	bus.OnPanic(func(_ eventbus.Event, _ any, r any) { panicked <- r })

	delivered := make(chan struct{}, 1)
	bus.SubscribeTuiStarted(func(eventbus.TUIStartedPayload) { panic("boom") })
	bus.SubscribeTuiStarted(func(eventbus.TUIStartedPayload) { delivered <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Start(ctx)

	bus.PublishTuiStarted(eventbus.TUIStartedPayload{})

	select {
	case r := <-panicked:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic hook not called")
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second subscriber not called after panic")
	}
}

func TestEventBus_OnSubscribe(t *testing.T) {
	bus := eventbus.New(1)

	var seen []eventbus.Event
	bus.OnSubscribe(func(e eventbus.Event) { seen = append(seen, e) })
	bus.SubscribeCatalogRefreshed(func(eventbus.CatalogRefreshedPayload) {})

	assert.Equal(t, []eventbus.Event{eventbus.EventCatalogRefreshed}, seen)
}
