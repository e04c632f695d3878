package logging

import "context"

type contextKey string

const (
	tableKey   contextKey = "table"
	commandKey contextKey = "command"
)

// WithTable adds a table name to the context.
func WithTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, tableKey, table)
}

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetTable retrieves the table name from the context.
// Returns empty string if not present.
func GetTable(ctx context.Context) string {
	if name, ok := ctx.Value(tableKey).(string); ok {
		return name
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}
