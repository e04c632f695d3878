package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the table and command names from the event context
// and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if table := GetTable(ctx); table != "" {
		e.Str("table", table)
	}

	if command := GetCommand(ctx); command != "" {
		e.Str("command", command)
	}
}
