package logging

import (
	"context"
	"testing"
)

func TestWithTable(t *testing.T) {
	ctx := WithTable(context.Background(), "channels")

	if got := GetTable(ctx); got != "channels" {
		t.Errorf("GetTable() = %q, want %q", got, "channels")
	}
}

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "seed")

	if got := GetCommand(ctx); got != "seed" {
		t.Errorf("GetCommand() = %q, want %q", got, "seed")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetTable(ctx); got != "" {
		t.Errorf("GetTable() = %q, want empty string", got)
	}
	if got := GetCommand(ctx); got != "" {
		t.Errorf("GetCommand() = %q, want empty string", got)
	}
}
