// Package config handles configuration loading and validation for tvconsole.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// Table names accepted under the tables key.
const (
	TableChannels = "channels"
	TableStreams  = "streams"
	TableLogos    = "logos"
	TableUsers    = "users"
	TableEPG      = "epg"
)

// TableNames lists the catalog tables in tab order.
var TableNames = []string{TableChannels, TableStreams, TableLogos, TableUsers, TableEPG}

// ErrUnknownTable is returned for table names that are not catalog tables.
var ErrUnknownTable = errors.New("unknown table")

// Config holds the application configuration.
type Config struct {
	Theme    string                 `yaml:"theme"`
	LogLevel string                 `yaml:"log_level"`
	TUI      TUIConfig              `yaml:"tui"`
	Database DatabaseConfig         `yaml:"database"`
	Tables   map[string]TableConfig `yaml:"tables"`
	DataDir  string                 `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds interactive console settings.
type TUIConfig struct {
	// RefreshInterval reloads the catalog periodically. Zero disables polling.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Mouse           bool          `yaml:"mouse"`
	// PageSize splits tables into pages. Zero shows every row in one scrolling page.
	PageSize int `yaml:"page_size"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// TableConfig customizes one catalog table.
type TableConfig struct {
	// Hide lists glob patterns matched against column ids.
	Hide   []string       `yaml:"hide"`
	Widths map[string]int `yaml:"widths"`
	// Sort is a column id, prefixed with "-" for descending order.
	Sort   string `yaml:"sort"`
	Filter string `yaml:"filter"`
}

// Hidden reports whether the column id matches any hide pattern. Invalid
// patterns never match; ValidateDeep reports them.
func (t TableConfig) Hidden(columnID string) bool {
	for _, pattern := range t.Hide {
		if ok, err := doublestar.Match(pattern, columnID); err == nil && ok {
			return true
		}
	}
	return false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:    styles.DefaultTheme,
		LogLevel: "info",
		TUI: TUIConfig{
			RefreshInterval: 0,
			Mouse:           true,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Tables: map[string]TableConfig{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Tables == nil {
		c.Tables = map[string]TableConfig{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	if c.TUI.RefreshInterval < 0 {
		return fmt.Errorf("tui.refresh_interval cannot be negative")
	}
	if c.TUI.RefreshInterval > 0 && c.TUI.RefreshInterval < time.Second {
		return fmt.Errorf("tui.refresh_interval must be at least 1s")
	}
	if c.TUI.PageSize < 0 {
		return fmt.Errorf("tui.page_size cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns cannot exceed max_open_conns")
	}

	for name, tc := range c.Tables {
		if !slices.Contains(TableNames, name) {
			return fmt.Errorf("tables.%s: %w", name, ErrUnknownTable)
		}
		for col, w := range tc.Widths {
			if w < 1 {
				return fmt.Errorf("tables.%s.widths.%s must be at least 1", name, col)
			}
		}
	}

	return nil
}

// Table returns the settings for a table, empty when not configured.
func (c *Config) Table(name string) TableConfig {
	return c.Tables[name]
}

// DatabaseFile returns the path to the catalog database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "tvconsole.db")
}

// LogFile returns the path the TUI writes its log to.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "tvconsole.log")
}
