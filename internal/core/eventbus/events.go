// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within tvconsole.
package eventbus

import (
	"time"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/notify"
)

// Event names a kind of event carried by the bus.
type Event string

// Keep list sorted A-Z
const (
	EventCatalogRefreshFailed  Event = "catalog.refresh-failed"
	EventCatalogRefreshed      Event = "catalog.refreshed"
	EventCatalogSeeded         Event = "catalog.seeded"
	EventNotificationPublished Event = "notification.published"
	EventRowExpanded           Event = "row.expanded"
	EventSelectionChanged      Event = "selection.changed"
	EventSelectionCopied       Event = "selection.copied"
	EventTuiStarted            Event = "tui.started"
	EventTuiStopped            Event = "tui.stopped"
)

// CatalogRefreshedPayload is emitted after the console reloads the catalog.
type CatalogRefreshedPayload struct {
	Counts   catalog.Counts
	Duration time.Duration
}

// CatalogRefreshFailedPayload is emitted when a catalog reload fails.
type CatalogRefreshFailedPayload struct {
	Err error
}

// CatalogSeededPayload is emitted after demo data is written.
type CatalogSeededPayload struct {
	Counts catalog.Counts
	Reset  bool
}

// NotificationPublishedPayload carries a user-facing message.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// RowExpandedPayload is emitted when a table expands or collapses a row.
// RowID is empty on collapse.
type RowExpandedPayload struct {
	Table string
	RowID string
}

// SelectionChangedPayload is emitted on every selection write of a table.
// IDs are in display order.
type SelectionChangedPayload struct {
	Table string
	IDs   []string
}

// SelectionCopiedPayload is emitted when selected ids are copied to the clipboard.
type SelectionCopiedPayload struct {
	Table string
	Count int
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
