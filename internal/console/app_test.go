package console

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	"github.com/hay-kot/tvconsole/internal/tui"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	database, err := OpenDatabase(&cfg, zerolog.Nop())
	require.NoError(t, err)

	app := NewApp(&cfg, database, tui.BuildInfo{Version: "test"})
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestOpenDatabase_CreatesDataDir(t *testing.T) {
	app := newTestApp(t)

	assert.FileExists(t, app.Config.DatabaseFile())
}

func TestOpenDatabase_RecoversFromCorruptFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	require.NoError(t, os.WriteFile(cfg.DatabaseFile(), []byte(strings.Repeat("not a sqlite database ", 64)), 0o644))

	database, err := OpenDatabase(&cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	backups, err := filepath.Glob(cfg.DatabaseFile() + ".corrupt.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	version, err := database.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Positive(t, version)
}

func TestApp_DatabaseInfo(t *testing.T) {
	app := newTestApp(t)

	info, err := app.DatabaseInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, app.Config.DatabaseFile(), info.Path)
	assert.Positive(t, info.SchemaVersion)
}

func TestApp_StartRoutesNotifications(t *testing.T) {
	app := newTestApp(t)
	app.Start(context.Background(), zerolog.Nop())

	got := make(chan eventbus.NotificationPublishedPayload, 1)
	app.Bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		got <- p
	})

	app.Bus.PublishCatalogSeeded(eventbus.CatalogSeededPayload{Counts: catalog.Counts{Channels: 4}})

	select {
	case p := <-got:
		assert.Equal(t, "seeded 4 channels, 0 streams", p.Message)
	case <-time.After(time.Second):
		t.Fatal("notification was not routed")
	}
}
