// Package catalog defines the IPTV catalog entities shown by the console:
// channels, streams, logos, users and EPG sources.
package catalog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a catalog entity does not exist.
var ErrNotFound = errors.New("not found")

// Channel is a numbered channel in the lineup.
type Channel struct {
	ID        int64    `json:"id"`
	Number    float64  `json:"number"`
	Name      string   `json:"name"`
	Group     string   `json:"group"`
	TVGID     string   `json:"tvg_id"`
	LogoID    int64    `json:"logo_id,omitempty"`
	StreamIDs []string `json:"stream_ids"`
}

// Stream is an upstream source a channel can play from.
type Stream struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Account string `json:"account"`
	Group   string `json:"group"`
	Active  bool   `json:"active"`
}

// Logo is an image assigned to channels.
type Logo struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	ChannelCount int    `json:"channel_count"`
}

// User is a console account.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// EPGSource is a program guide feed.
type EPGSource struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	URL         string     `json:"url"`
	Status      EPGStatus  `json:"status"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
	// Notes is markdown shown in the source's detail pane.
	Notes string `json:"notes,omitempty"`
}

// Counts is the number of rows per entity.
type Counts struct {
	Channels   int `json:"channels"`
	Streams    int `json:"streams"`
	Logos      int `json:"logos"`
	Users      int `json:"users"`
	EPGSources int `json:"epg_sources"`
}

// SeedOptions controls demo data generation.
type SeedOptions struct {
	// Channels is the number of channels to create. Streams, logos, users and
	// EPG sources scale from it.
	Channels int
	// Reset clears existing rows first.
	Reset bool
}

// Store reads and seeds the catalog.
type Store interface {
	ListChannels(ctx context.Context) ([]Channel, error)
	ListStreams(ctx context.Context) ([]Stream, error)
	ListLogos(ctx context.Context) ([]Logo, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListEPGSources(ctx context.Context) ([]EPGSource, error)
	Counts(ctx context.Context) (Counts, error)
	Seed(ctx context.Context, opts SeedOptions) (Counts, error)
	Reset(ctx context.Context) error
}
