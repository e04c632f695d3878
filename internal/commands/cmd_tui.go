package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tvconsole/internal/console"
	"github.com/hay-kot/tvconsole/internal/core/logging"
	"github.com/hay-kot/tvconsole/internal/profiler"
	"github.com/hay-kot/tvconsole/internal/tui"
	catalogview "github.com/hay-kot/tvconsole/internal/tui/views/catalog"
)

type TuiCmd struct {
	flags *Flags
	app   *console.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *console.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TVCONSOLE_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	var warnings []string
	for _, w := range cmd.app.Config.Warnings(catalogview.ColumnIndex()) {
		warnings = append(warnings, fmt.Sprintf("config: %s %s", w.Item, w.Message))
	}

	m := tui.New(cmd.app.Config, tui.Options{
		Store:    cmd.app.Catalog,
		Bus:      cmd.app.Bus,
		KVStore:  cmd.app.KV,
		Info:     cmd.app.DatabaseInfo,
		Warnings: warnings,
		Build:    cmd.app.Build,
	})

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
