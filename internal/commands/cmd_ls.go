package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/tvconsole/internal/console"
	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/logging"
	catalogview "github.com/hay-kot/tvconsole/internal/tui/views/catalog"
	"github.com/hay-kot/tvconsole/pkg/iojson"
)

const fallbackWidth = 120

type LsCmd struct {
	flags *Flags
	app   *console.App

	// flags
	jsonOutput bool
	sort       string
	filter     string
	width      int
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *console.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "Print a catalog table",
		UsageText: "tvconsole ls <table> [--sort column] [--filter text] [--json]",
		Description: fmt.Sprintf(`Prints one catalog table with the same columns, sort and filter as the console.

Tables: %s

The table's configured sort and filter apply unless overridden. Prefix the
sort column with "-" for descending order. Use --json for JSON lines output.`,
			strings.Join(config.TableNames, ", ")),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output rows as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "sort",
				Aliases:     []string{"s"},
				Usage:       "sort column id, \"-\" prefix for descending",
				Destination: &cmd.sort,
			},
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "fuzzy filter applied to the table's text columns",
				Destination: &cmd.filter,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "table width (defaults to the terminal width)",
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected one table name (%s)", strings.Join(config.TableNames, ", "))
	}
	name := c.Args().First()
	ctx = logging.WithCommand(logging.WithTable(ctx, name), "ls")

	snap, err := catalog.Load(ctx, cmd.app.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	tc := cmd.app.Config.Table(name)
	opts := catalogview.PlainOptions{
		Width:  cmd.tableWidth(),
		Sort:   tc.Sort,
		Filter: tc.Filter,
		Config: cmd.app.Config,
	}
	if c.IsSet("sort") {
		opts.Sort = cmd.sort
	}
	if c.IsSet("filter") {
		opts.Filter = cmd.filter
	}

	log.Debug().Ctx(ctx).
		Str("sort", opts.Sort).
		Str("filter", opts.Filter).
		Int("width", opts.Width).
		Msg("listing table")

	out := c.Root().Writer

	if cmd.jsonOutput {
		records, err := catalogview.Records(name, snap, opts)
		if err != nil {
			return err
		}
		for _, r := range records {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode row: %w", err)
			}
		}
		return nil
	}

	rendered, err := catalogview.Render(name, snap, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func (cmd *LsCmd) tableWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}
