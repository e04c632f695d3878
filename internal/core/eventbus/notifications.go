package eventbus

import (
	"fmt"

	"github.com/hay-kot/tvconsole/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeCatalogRefreshFailed(func(p CatalogRefreshFailedPayload) {
		r.notifyf(notify.LevelError, "refresh failed: %v", p.Err)
	})

	r.bus.SubscribeCatalogSeeded(func(p CatalogSeededPayload) {
		r.notifyf(notify.LevelInfo, "seeded %d channels, %d streams", p.Counts.Channels, p.Counts.Streams)
	})

	r.bus.SubscribeSelectionCopied(func(p SelectionCopiedPayload) {
		if p.Count == 0 {
			r.notifyf(notify.LevelWarning, "nothing selected in %s", p.Table)
			return
		}
		r.notifyf(notify.LevelInfo, "copied %d %s ids", p.Count, p.Table)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
