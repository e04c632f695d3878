package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tvconsole/internal/console"
	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	"github.com/hay-kot/tvconsole/internal/core/logging"
	"github.com/hay-kot/tvconsole/internal/data/stores"
	"github.com/hay-kot/tvconsole/internal/printer"
	"github.com/hay-kot/tvconsole/pkg/iojson"
)

type DBCmd struct {
	flags *Flags
	app   *console.App

	// flags
	channels   int
	reset      bool
	yes        bool
	jsonOutput bool

	// confirm asks before destructive writes. Replaced in tests.
	confirm func(title, description string) (bool, error)
}

// NewDBCmd creates the db command group.
func NewDBCmd(flags *Flags, app *console.App) *DBCmd {
	return &DBCmd{flags: flags, app: app, confirm: confirmPrompt}
}

// Register adds the db commands to the application.
func (cmd *DBCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "db",
		Usage: "Catalog database commands",
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Fill the catalog with demo data",
				UsageText: "tvconsole db seed [--channels n] [--reset] [--yes]",
				Description: `Writes deterministic demo channels, streams, logos, users and EPG sources.

Seeding is idempotent: rows are keyed by stable ids and replaced in place.
Use --reset to clear the catalog first.`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "channels",
						Usage:       "number of channels to create",
						Value:       stores.DefaultSeedChannels,
						Destination: &cmd.channels,
					},
					&cli.BoolFlag{
						Name:        "reset",
						Usage:       "delete existing rows before seeding",
						Destination: &cmd.reset,
					},
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runSeed,
			},
			{
				Name:      "reset",
				Usage:     "Delete every catalog row",
				UsageText: "tvconsole db reset [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runReset,
			},
			{
				Name:      "info",
				Usage:     "Show database location, schema version and row counts",
				UsageText: "tvconsole db info [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runInfo,
			},
		},
	})

	return app
}

func (cmd *DBCmd) runSeed(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.reset {
		ok, err := cmd.confirmed(ctx, "Reset the catalog before seeding?", "Every channel, stream, logo, user and EPG source is deleted.")
		if err != nil || !ok {
			return err
		}
	}

	counts, err := cmd.app.Catalog.Seed(ctx, catalog.SeedOptions{Channels: cmd.channels, Reset: cmd.reset})
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	log.Info().Ctx(logging.WithCommand(ctx, "db seed")).
		Int("channels", counts.Channels).
		Bool("reset", cmd.reset).
		Msg("catalog seeded")
	cmd.app.Bus.PublishCatalogSeeded(eventbus.CatalogSeededPayload{Counts: counts, Reset: cmd.reset})

	p.Successf("Seeded %d channels, %d streams, %d logos, %d users, %d EPG sources",
		counts.Channels, counts.Streams, counts.Logos, counts.Users, counts.EPGSources)
	return nil
}

func (cmd *DBCmd) runReset(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	ok, err := cmd.confirmed(ctx, "Delete every catalog row?", cmd.app.Config.DatabaseFile())
	if err != nil || !ok {
		return err
	}

	if err := cmd.app.Catalog.Reset(ctx); err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}

	log.Info().Ctx(logging.WithCommand(ctx, "db reset")).Msg("catalog reset")
	p.Successf("Catalog reset")
	return nil
}

type dbInfo struct {
	Path          string         `json:"path"`
	SchemaVersion int            `json:"schema_version"`
	Counts        catalog.Counts `json:"counts"`
}

func (cmd *DBCmd) runInfo(ctx context.Context, c *cli.Command) error {
	info, err := cmd.app.DatabaseInfo(ctx)
	if err != nil {
		return fmt.Errorf("database info: %w", err)
	}
	counts, err := cmd.app.Catalog.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, dbInfo{
			Path:          info.Path,
			SchemaVersion: info.SchemaVersion,
			Counts:        counts,
		})
	}

	p := printer.Ctx(ctx)
	p.Header("Database")
	p.Printf("  Path:    %s", info.Path)
	p.Printf("  Schema:  v%d", info.SchemaVersion)
	p.Printf("")
	p.Header("Catalog")
	p.Printf("  Channels:     %d", counts.Channels)
	p.Printf("  Streams:      %d", counts.Streams)
	p.Printf("  Logos:        %d", counts.Logos)
	p.Printf("  Users:        %d", counts.Users)
	p.Printf("  EPG sources:  %d", counts.EPGSources)
	if counts.Channels == 0 {
		p.Printf("")
		p.Infof("Run 'tvconsole db seed' to load demo data")
	}
	return nil
}

// confirmed reports whether a destructive command may continue. An aborted
// prompt cancels without error.
func (cmd *DBCmd) confirmed(ctx context.Context, title, description string) (bool, error) {
	if cmd.yes {
		return true, nil
	}

	ok, err := cmd.confirm(title, description)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		printer.Ctx(ctx).Infof("Aborted")
	}
	return ok, nil
}

func confirmPrompt(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
