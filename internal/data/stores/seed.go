package stores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
)

// DefaultSeedChannels is the channel count used when SeedOptions.Channels is zero.
const DefaultSeedChannels = 48

var (
	seedNetworks = []struct{ name, group string }{
		{"ESPN", "Sports"},
		{"Sky Sports", "Sports"},
		{"BBC News", "News"},
		{"CNN", "News"},
		{"Al Jazeera", "News"},
		{"HBO", "Movies"},
		{"AMC", "Movies"},
		{"Cartoon Network", "Kids"},
		{"Nickelodeon", "Kids"},
		{"Discovery", "Documentary"},
		{"National Geographic", "Documentary"},
		{"MTV", "Music"},
	}

	seedAccounts = []string{"primary", "backup", "regional"}

	seedUsers = []struct {
		name   string
		role   catalog.Role
		active bool
	}{
		{"admin", catalog.RoleAdmin, true},
		{"alex", catalog.RoleOperator, true},
		{"jordan", catalog.RoleOperator, true},
		{"morgan", catalog.RoleViewer, true},
		{"riley", catalog.RoleViewer, false},
		{"sam", catalog.RoleViewer, true},
		{"taylor", catalog.RoleOperator, false},
		{"casey", catalog.RoleViewer, true},
	}

	seedEPG = []struct {
		name, kind, url string
		status          catalog.EPGStatus
		notes           string
	}{
		{"Schedules Direct", "schedules_direct", "https://json.schedulesdirect.org/20141201", catalog.EPGStatusSuccess,
			"## Schedules Direct\n\nPrimary guide for **US** lineups.\n\n- Refreshes every 12h\n- Covers channels 1-400\n"},
		{"XMLTV UK", "xmltv", "https://epg.example.com/uk.xml.gz", catalog.EPGStatusSuccess,
			"## XMLTV UK\n\nFreeview and Sky listings.\n\n> Times are published in `Europe/London`.\n"},
		{"Sports Guide", "xmltv", "https://epg.example.com/sports.xml", catalog.EPGStatusError,
			"## Sports Guide\n\nLast refresh failed with `HTTP 503`.\n\n1. Check the upstream status page\n2. Retry the refresh\n"},
		{"Kids Guide", "xmltv", "https://epg.example.com/kids.xml", catalog.EPGStatusIdle, ""},
		{"Dummy", "dummy", "", catalog.EPGStatusIdle,
			"Generates placeholder programs for channels without guide data."},
	}
)

// Seed fills the catalog with deterministic demo data. Stream and user ids are
// name based UUIDs so reseeding produces the same ids.
func (s *CatalogStore) Seed(ctx context.Context, opts catalog.SeedOptions) (catalog.Counts, error) {
	n := opts.Channels
	if n <= 0 {
		n = DefaultSeedChannels
	}
	now := s.now()

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if opts.Reset {
			if err := resetTx(ctx)(tx); err != nil {
				return err
			}
		}

		for i, net := range seedNetworks {
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO logos (id, name, url) VALUES (?, ?, ?)`,
				i+1, net.name, "https://logos.example.com/"+slug(net.name)+".png")
			if err != nil {
				return fmt.Errorf("seed logo: %w", err)
			}
		}

		for i := range n {
			net := seedNetworks[i%len(seedNetworks)]
			name := net.name
			if round := i / len(seedNetworks); round > 0 {
				name = fmt.Sprintf("%s %d", net.name, round+1)
			}
			channelID := int64(i + 1)
			number := float64(100 + i)
			if i%5 == 4 {
				number += 0.1 // subchannels
			}

			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO channels (id, number, name, grp, tvg_id, logo_id) VALUES (?, ?, ?, ?, ?, ?)`,
				channelID, number, name, net.group, slug(name)+".tv", i%len(seedNetworks)+1)
			if err != nil {
				return fmt.Errorf("seed channel: %w", err)
			}

			for j := range 2 {
				account := seedAccounts[(i+j)%len(seedAccounts)]
				url := fmt.Sprintf("http://%s.streams.example.com/live/%s.m3u8", account, slug(name))
				id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()

				_, err := tx.ExecContext(ctx,
					`INSERT OR REPLACE INTO streams (id, name, url, account, grp, active) VALUES (?, ?, ?, ?, ?, ?)`,
					id, fmt.Sprintf("%s (%s)", name, account), url, account, net.group, (i+j)%7 != 0)
				if err != nil {
					return fmt.Errorf("seed stream: %w", err)
				}

				_, err = tx.ExecContext(ctx,
					`INSERT OR REPLACE INTO channel_streams (channel_id, stream_id, position) VALUES (?, ?, ?)`,
					channelID, id, j)
				if err != nil {
					return fmt.Errorf("seed channel stream: %w", err)
				}
			}
		}

		for i, u := range seedUsers {
			id := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(u.name+".users.tvconsole")).String()
			var lastLogin sql.NullInt64
			if u.active {
				lastLogin = sql.NullInt64{Int64: now.Add(-time.Duration(i*i) * time.Hour).UnixNano(), Valid: true}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO users (id, username, email, role, active, last_login) VALUES (?, ?, ?, ?, ?, ?)`,
				id, u.name, u.name+"@example.com", u.role.String(), u.active, lastLogin)
			if err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
		}

		for i, e := range seedEPG {
			var refreshed sql.NullInt64
			if e.status != catalog.EPGStatusIdle {
				refreshed = sql.NullInt64{Int64: now.Add(-time.Duration(i+1) * 90 * time.Minute).UnixNano(), Valid: true}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO epg_sources (id, name, type, url, status, refreshed_at, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				i+1, e.name, e.kind, e.url, e.status.String(), refreshed, e.notes)
			if err != nil {
				return fmt.Errorf("seed epg source: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return catalog.Counts{}, err
	}

	return s.Counts(ctx)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
