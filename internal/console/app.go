// Package console assembles the stores and event bus shared by every command.
package console

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	"github.com/hay-kot/tvconsole/internal/data/db"
	"github.com/hay-kot/tvconsole/internal/data/stores"
	"github.com/hay-kot/tvconsole/internal/tui"
)

const busBuffer = 256

// App is the central entry point for tvconsole operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	DB      *db.DB
	Catalog *stores.CatalogStore
	KV      *stores.KVStore
	Bus     *eventbus.EventBus
	Build   tui.BuildInfo

	stop   context.CancelFunc
	logger zerolog.Logger
}

// NewApp constructs an App around an open database.
func NewApp(cfg *config.Config, database *db.DB, build tui.BuildInfo) *App {
	return &App{
		Config:  cfg,
		DB:      database,
		Catalog: stores.NewCatalogStore(database),
		KV:      stores.NewKVStore(database),
		Bus:     eventbus.New(busBuffer),
		Build:   build,
	}
}

// OpenDatabase opens the catalog database in cfg.DataDir. A corrupt database
// is moved aside and a fresh one is created in its place.
func OpenDatabase(cfg *config.Config, logger zerolog.Logger) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
		Logger:       logger,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	logger.Warn().Err(err).Str("path", cfg.DatabaseFile()).Msg("database is corrupt, moving it aside")
	rec, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}
	logger.Warn().Str("backup", rec.Backup).Strs("moved", rec.Moved).Msg("corrupt database moved aside")
	return db.Open(cfg.DataDir, opts)
}

// Start runs the event bus in the background and registers the debug logger
// and the notification router. It is undone by Close.
func (a *App) Start(ctx context.Context, logger zerolog.Logger) {
	ctx, a.stop = context.WithCancel(ctx)
	a.logger = logger

	eventbus.RegisterDebugLogger(a.Bus, logger)
	eventbus.NewNotificationRouter(a.Bus).Register()

	go a.Bus.Start(ctx)
}

// Close stops the event bus and closes the database.
func (a *App) Close() error {
	if a.stop != nil {
		a.stop()
		for event, n := range a.Bus.Dropped() {
			a.logger.Warn().Str("event", string(event)).Int("dropped", n).Msg("events dropped while running")
		}
	}
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// DatabaseInfo reports the database location and schema version.
func (a *App) DatabaseInfo(ctx context.Context) (tui.DatabaseInfo, error) {
	version, err := a.DB.SchemaVersion(ctx)
	if err != nil {
		return tui.DatabaseInfo{}, err
	}
	return tui.DatabaseInfo{Path: a.Config.DatabaseFile(), SchemaVersion: version}, nil
}
