package catalog

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is every catalog entity loaded at one point in time.
type Snapshot struct {
	Channels   []Channel
	Streams    []Stream
	Logos      []Logo
	Users      []User
	EPGSources []EPGSource
	LoadedAt   time.Time
}

// Load reads the full catalog from store.
func Load(ctx context.Context, store Store) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Channels, err = store.ListChannels(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list channels: %w", err)
	}
	if s.Streams, err = store.ListStreams(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list streams: %w", err)
	}
	if s.Logos, err = store.ListLogos(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list logos: %w", err)
	}
	if s.Users, err = store.ListUsers(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list users: %w", err)
	}
	if s.EPGSources, err = store.ListEPGSources(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list epg sources: %w", err)
	}
	s.LoadedAt = time.Now()
	return s, nil
}

// Counts returns the number of rows per entity.
func (s Snapshot) Counts() Counts {
	return Counts{
		Channels:   len(s.Channels),
		Streams:    len(s.Streams),
		Logos:      len(s.Logos),
		Users:      len(s.Users),
		EPGSources: len(s.EPGSources),
	}
}

// LogoByID indexes logos by id.
func (s Snapshot) LogoByID() map[int64]Logo {
	out := make(map[int64]Logo, len(s.Logos))
	for _, l := range s.Logos {
		out[l.ID] = l
	}
	return out
}

// StreamByID indexes streams by id.
func (s Snapshot) StreamByID() map[string]Stream {
	out := make(map[string]Stream, len(s.Streams))
	for _, st := range s.Streams {
		out[st.ID] = st
	}
	return out
}
