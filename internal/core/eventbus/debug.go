package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// maxLoggedIDs caps the row ids written for one selection event.
const maxLoggedIDs = 10

// RegisterDebugLogger logs bus activity: every published event at debug level
// with the table, row and count fields of its payload, drops as warnings with
// the running drop count, and subscriber panics as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		withPayload(logger.Debug().Str("event", string(event)), payload).Msg("event fired")
	})

	bus.OnDrop(func(event Event, payload any) {
		withPayload(logger.Warn().Str("event", string(event)), payload).
			Int("dropped", bus.Dropped()[event]).
			Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, payload any, recovered any) {
		withPayload(logger.Error().Str("event", string(event)), payload).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func withPayload(e *zerolog.Event, payload any) *zerolog.Event {
	switch p := payload.(type) {
	case SelectionChangedPayload:
		ids := p.IDs
		if len(ids) > maxLoggedIDs {
			ids = ids[:maxLoggedIDs]
		}
		return e.Str("table", p.Table).Int("selected", len(p.IDs)).Strs("row_ids", ids)
	case RowExpandedPayload:
		e = e.Str("table", p.Table)
		if p.RowID == "" {
			return e.Bool("collapsed", true)
		}
		return e.Str("row_id", p.RowID)
	case SelectionCopiedPayload:
		return e.Str("table", p.Table).Int("count", p.Count)
	case CatalogRefreshedPayload:
		return e.Int("channels", p.Counts.Channels).Int("streams", p.Counts.Streams).Dur("took", p.Duration)
	case CatalogRefreshFailedPayload:
		return e.AnErr("cause", p.Err)
	case CatalogSeededPayload:
		return e.Int("channels", p.Counts.Channels).Int("streams", p.Counts.Streams).Bool("reset", p.Reset)
	case NotificationPublishedPayload:
		return e.Str("level", string(p.Level)).Str("message", p.Message)
	}
	return e
}
