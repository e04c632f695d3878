package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, want, *cfg)
	assert.True(t, cfg.TUI.Mouse)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
tui:
  refresh_interval: 30s
  page_size: 50
tables:
  streams:
    hide: ["url", "acc*"]
    widths:
      name: 30
    sort: -name
    filter: espn
`)
	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 30*time.Second, cfg.TUI.RefreshInterval)
	assert.Equal(t, 50, cfg.TUI.PageSize)
	assert.True(t, cfg.TUI.Mouse, "unset keys keep their defaults")
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)

	streams := cfg.Table(TableStreams)
	assert.Equal(t, "-name", streams.Sort)
	assert.Equal(t, 30, streams.Widths["name"])
	assert.Empty(t, cfg.Table(TableLogos).Hide)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "theme: [")
	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme = "neon" }, wantErr: "unknown theme"},
		{name: "fast refresh", mutate: func(c *Config) { c.TUI.RefreshInterval = time.Millisecond }, wantErr: "at least 1s"},
		{name: "negative page size", mutate: func(c *Config) { c.TUI.PageSize = -1 }, wantErr: "page_size"},
		{name: "idle over open", mutate: func(c *Config) { c.Database.MaxIdleConns = 9 }, wantErr: "max_idle_conns"},
		{
			name:    "unknown table",
			mutate:  func(c *Config) { c.Tables["chanels"] = TableConfig{} },
			wantErr: "unknown table",
		},
		{
			name:    "zero width",
			mutate:  func(c *Config) { c.Tables[TableUsers] = TableConfig{Widths: map[string]int{"email": 0}} },
			wantErr: "tables.users.widths.email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestUnknownTableIsSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Tables["epgs"] = TableConfig{}
	assert.ErrorIs(t, cfg.Validate(), ErrUnknownTable)
}

func TestTableConfig_Hidden(t *testing.T) {
	tc := TableConfig{Hide: []string{"url", "last_*", "[invalid"}}

	assert.True(t, tc.Hidden("url"))
	assert.True(t, tc.Hidden("last_login"))
	assert.False(t, tc.Hidden("name"))
	assert.False(t, tc.Hidden("[invalid"))
}

func TestPaths(t *testing.T) {
	cfg := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "tvconsole.db"), cfg.DatabaseFile())
	assert.Equal(t, filepath.Join("/data", "tvconsole.log"), cfg.LogFile())
}
