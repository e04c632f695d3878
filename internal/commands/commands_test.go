package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tvconsole/internal/console"
	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/config"
	"github.com/hay-kot/tvconsole/internal/core/eventbus"
	"github.com/hay-kot/tvconsole/internal/core/eventbus/testbus"
	"github.com/hay-kot/tvconsole/internal/printer"
	"github.com/hay-kot/tvconsole/internal/tui"
)

type harness struct {
	flags *Flags
	app   *console.App
	bus   *testbus.Bus

	// confirm replaces the interactive prompt of db commands.
	confirm func(title, description string) (bool, error)
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	database, err := console.OpenDatabase(&cfg, zerolog.Nop())
	require.NoError(t, err)

	app := console.NewApp(&cfg, database, tui.BuildInfo{Version: "test"})
	bus := testbus.New(t)
	app.Bus = bus.EventBus
	t.Cleanup(func() { _ = app.Close() })

	return &harness{
		flags: &Flags{Config: &cfg, DataDir: cfg.DataDir},
		app:   app,
		bus:   bus,
		confirm: func(string, string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		},
	}
}

// run executes args against a freshly assembled command tree.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := &cli.Command{
		Name:           "tvconsole",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	db := NewDBCmd(h.flags, h.app)
	db.confirm = h.confirm
	root = db.Register(root)
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&out))
	err := root.Run(ctx, append([]string{"tvconsole"}, args...))
	return ansi.Strip(out.String()), err
}

func (h *harness) seed(t *testing.T, channels int) {
	t.Helper()
	_, err := h.app.Catalog.Seed(context.Background(), catalog.SeedOptions{Channels: channels})
	require.NoError(t, err)
}

func TestDBSeed(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "db", "seed", "--channels", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 6 channels, 12 streams")

	h.bus.AssertPublished(t, eventbus.EventCatalogSeeded)
	seeded := testbus.Payloads[eventbus.CatalogSeededPayload](h.bus, eventbus.EventCatalogSeeded)
	require.Len(t, seeded, 1)
	assert.Equal(t, 6, seeded[0].Counts.Channels)
	assert.False(t, seeded[0].Reset)
}

func TestDBSeed_ResetConfirmation(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		answer       bool
		wantPrompt   bool
		wantChannels int
	}{
		{name: "declined", args: []string{"db", "seed", "--channels", "3", "--reset"}, answer: false, wantPrompt: true, wantChannels: 10},
		{name: "accepted", args: []string{"db", "seed", "--channels", "3", "--reset"}, answer: true, wantPrompt: true, wantChannels: 3},
		{name: "yes flag", args: []string{"db", "seed", "--channels", "3", "--reset", "--yes"}, wantPrompt: false, wantChannels: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.seed(t, 10)

			prompted := false
			h.confirm = func(string, string) (bool, error) {
				prompted = true
				return tt.answer, nil
			}

			_, err := h.run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrompt, prompted)

			counts, err := h.app.Catalog.Counts(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantChannels, counts.Channels)
		})
	}
}

func TestDBReset(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 4)

	out, err := h.run(t, "db", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog reset")

	counts, err := h.app.Catalog.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Counts{}, counts)
}

func TestDBInfo(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 4)

	out, err := h.run(t, "db", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Channels:     4")

	out, err = h.run(t, "db", "info", "--json")
	require.NoError(t, err)

	var got dbInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, h.app.Config.DatabaseFile(), got.Path)
	assert.Positive(t, got.SchemaVersion)
	assert.Equal(t, 4, got.Counts.Channels)
	assert.Equal(t, 8, got.Counts.Streams)
}

func TestLs_Plain(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 6)

	out, err := h.run(t, "ls", "channels", "--width", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, out, "ESPN")
	assert.Contains(t, out, "Al Jazeera")
}

func TestLs_JSONHonoursSortAndFilter(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 6)

	out, err := h.run(t, "ls", "channels", "--json", "--sort", "-number")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)

	var first struct {
		Number float64 `json:"number"`
		Name   string  `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.InDelta(t, 105.0, first.Number, 0.001)
	assert.Equal(t, "HBO", first.Name)

	out, err = h.run(t, "ls", "streams", "--json", "--filter", "cnn")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Less(t, len(lines), 12)
	assert.Contains(t, out, "CNN (")
}

func TestLs_UsesConfiguredSort(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 6)
	h.flags.Config.Tables[config.TableChannels] = config.TableConfig{Sort: "-name"}

	out, err := h.run(t, "ls", "channels", "--json")
	require.NoError(t, err)

	var first struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(out, "\n", 2)[0]), &first))
	assert.Equal(t, "Sky Sports", first.Name)
}

func TestLs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no table", args: []string{"ls"}, wantErr: "expected one table name"},
		{name: "unknown table", args: []string{"ls", "chanels"}, wantErr: `did you mean "channels"`},
		{name: "unknown sort column", args: []string{"ls", "users", "--sort", "usrname"}, wantErr: "unknown column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		tables    map[string]config.TableConfig
		wantValid bool
		wantField string
		wantWarn  string
	}{
		{
			name:      "defaults",
			wantValid: true,
		},
		{
			name:      "unknown sort column",
			tables:    map[string]config.TableConfig{config.TableChannels: {Sort: "-nmae"}},
			wantField: "tables.channels.sort",
		},
		{
			name:      "sorted column hidden",
			tables:    map[string]config.TableConfig{config.TableUsers: {Sort: "email", Hide: []string{"email"}}},
			wantValid: true,
			wantWarn:  `sorted column "email" is hidden`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.tables != nil {
				h.flags.Config.Tables = tt.tables
			}

			out, err := h.run(t, "config", "validate", "--format", "json")
			if tt.wantValid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}

			var report validationReport
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Equal(t, tt.wantValid, report.Valid)

			if tt.wantField != "" {
				require.NotEmpty(t, report.Errors)
				assert.Contains(t, report.Errors[0].Field, tt.wantField)
			}
			if tt.wantWarn != "" {
				require.NotEmpty(t, report.Warnings)
				assert.Equal(t, tt.wantWarn, report.Warnings[0].Message)
			}
		})
	}
}

func TestConfigValidate_Text(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Configuration is valid")
}
