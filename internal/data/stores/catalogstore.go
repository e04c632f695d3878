package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/data/db"
)

// CatalogStore implements catalog.Store using SQLite.
type CatalogStore struct {
	db  *db.DB
	now func() time.Time
}

var _ catalog.Store = (*CatalogStore)(nil)

// NewCatalogStore creates a new SQLite-backed catalog store.
func NewCatalogStore(db *db.DB) *CatalogStore {
	return &CatalogStore{db: db, now: time.Now}
}

// ListChannels returns all channels ordered by channel number.
func (s *CatalogStore) ListChannels(ctx context.Context) ([]catalog.Channel, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, number, name, grp, tvg_id, COALESCE(logo_id, 0)
		FROM channels
		ORDER BY number, id`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var channels []catalog.Channel
	index := make(map[int64]int)
	for rows.Next() {
		var ch catalog.Channel
		if err := rows.Scan(&ch.ID, &ch.Number, &ch.Name, &ch.Group, &ch.TVGID, &ch.LogoID); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		ch.StreamIDs = []string{}
		index[ch.ID] = len(channels)
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	links, err := s.db.Conn().QueryContext(ctx, `
		SELECT channel_id, stream_id FROM channel_streams ORDER BY channel_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list channel streams: %w", err)
	}
	defer func() { _ = links.Close() }()

	for links.Next() {
		var (
			channelID int64
			streamID  string
		)
		if err := links.Scan(&channelID, &streamID); err != nil {
			return nil, fmt.Errorf("scan channel stream: %w", err)
		}
		if i, ok := index[channelID]; ok {
			channels[i].StreamIDs = append(channels[i].StreamIDs, streamID)
		}
	}

	return channels, links.Err()
}

// ListStreams returns all streams ordered by name.
func (s *CatalogStore) ListStreams(ctx context.Context) ([]catalog.Stream, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, name, url, account, grp, active
		FROM streams
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var streams []catalog.Stream
	for rows.Next() {
		var st catalog.Stream
		if err := rows.Scan(&st.ID, &st.Name, &st.URL, &st.Account, &st.Group, &st.Active); err != nil {
			return nil, fmt.Errorf("scan stream: %w", err)
		}
		streams = append(streams, st)
	}
	return streams, rows.Err()
}

// ListLogos returns all logos ordered by name, with the number of channels
// using each.
func (s *CatalogStore) ListLogos(ctx context.Context) ([]catalog.Logo, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT l.id, l.name, l.url, COUNT(c.id)
		FROM logos l
		LEFT JOIN channels c ON c.logo_id = l.id
		GROUP BY l.id
		ORDER BY l.name, l.id`)
	if err != nil {
		return nil, fmt.Errorf("list logos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logos []catalog.Logo
	for rows.Next() {
		var l catalog.Logo
		if err := rows.Scan(&l.ID, &l.Name, &l.URL, &l.ChannelCount); err != nil {
			return nil, fmt.Errorf("scan logo: %w", err)
		}
		logos = append(logos, l)
	}
	return logos, rows.Err()
}

// ListUsers returns all users ordered by username.
func (s *CatalogStore) ListUsers(ctx context.Context) ([]catalog.User, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, username, email, role, active, last_login
		FROM users
		ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []catalog.User
	for rows.Next() {
		var (
			u         catalog.User
			role      string
			lastLogin sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &role, &u.Active, &lastLogin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if u.Role, err = catalog.ParseRole(role); err != nil {
			return nil, fmt.Errorf("user %s: %w", u.Username, err)
		}
		u.LastLogin = unixNanoPtr(lastLogin)
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListEPGSources returns all EPG sources ordered by name.
func (s *CatalogStore) ListEPGSources(ctx context.Context) ([]catalog.EPGSource, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, name, type, url, status, refreshed_at, notes
		FROM epg_sources
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list epg sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []catalog.EPGSource
	for rows.Next() {
		var (
			src       catalog.EPGSource
			status    string
			refreshed sql.NullInt64
		)
		if err := rows.Scan(&src.ID, &src.Name, &src.Type, &src.URL, &status, &refreshed, &src.Notes); err != nil {
			return nil, fmt.Errorf("scan epg source: %w", err)
		}
		if src.Status, err = catalog.ParseEPGStatus(status); err != nil {
			return nil, fmt.Errorf("epg source %s: %w", src.Name, err)
		}
		src.RefreshedAt = unixNanoPtr(refreshed)
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// Counts returns the number of rows per entity.
func (s *CatalogStore) Counts(ctx context.Context) (catalog.Counts, error) {
	var c catalog.Counts
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM channels),
			(SELECT COUNT(*) FROM streams),
			(SELECT COUNT(*) FROM logos),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM epg_sources)`,
	).Scan(&c.Channels, &c.Streams, &c.Logos, &c.Users, &c.EPGSources)
	if err != nil {
		return catalog.Counts{}, fmt.Errorf("count catalog: %w", err)
	}
	return c, nil
}

// Reset deletes every catalog row.
func (s *CatalogStore) Reset(ctx context.Context) error {
	return s.db.WithTx(ctx, resetTx(ctx))
}

func resetTx(ctx context.Context) func(*sql.Tx) error {
	return func(tx *sql.Tx) error {
		for _, table := range []string{"channel_streams", "channels", "streams", "logos", "users", "epg_sources"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	}
}

func unixNanoPtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64)
	return &t
}
