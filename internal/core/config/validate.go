package config

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Columns maps each table name to its column ids. The catalog views supply
// it so the config package does not depend on them.
type Columns map[string][]string

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// column references, glob patterns, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string, columns Columns) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateLogLevel(),
		c.validateTables(columns),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings(columns Columns) []ValidationWarning {
	var warnings []ValidationWarning

	for _, name := range sortedKeys(c.Tables) {
		tc := c.Tables[name]
		cols := columns[name]
		if len(cols) == 0 {
			continue
		}

		hidden := 0
		for _, col := range cols {
			if tc.Hidden(col) {
				hidden++
			}
		}
		if hidden == len(cols) {
			warnings = append(warnings, ValidationWarning{
				Category: "Tables",
				Item:     name,
				Message:  "hide patterns match every column",
			})
		}

		if tc.Sort != "" && tc.Hidden(trimSort(tc.Sort)) {
			warnings = append(warnings, ValidationWarning{
				Category: "Tables",
				Item:     name,
				Message:  fmt.Sprintf("sorted column %q is hidden", trimSort(tc.Sort)),
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateLogLevel() error {
	return criterio.Run("log_level", c.LogLevel, func(level string) error {
		if _, err := zerolog.ParseLevel(level); err != nil {
			return fmt.Errorf("invalid level %q", level)
		}
		return nil
	})
}

// validateTables checks that hide patterns compile and that widths and sort
// reference real columns.
func (c *Config) validateTables(columns Columns) error {
	var errs criterio.FieldErrorsBuilder

	for _, name := range sortedKeys(c.Tables) {
		tc := c.Tables[name]
		cols := columns[name]
		field := "tables." + name

		for i, pattern := range tc.Hide {
			if !doublestar.ValidatePattern(pattern) {
				errs = errs.Append(fmt.Sprintf("%s.hide[%d]", field, i), fmt.Errorf("invalid glob %q", pattern))
			}
		}

		if len(cols) == 0 {
			continue
		}

		for _, col := range sortedKeys(tc.Widths) {
			if !slices.Contains(cols, col) {
				errs = errs.Append(field+".widths."+col, unknownColumn(col, cols))
			}
		}

		if tc.Sort != "" {
			if col := trimSort(tc.Sort); !slices.Contains(cols, col) {
				errs = errs.Append(field+".sort", unknownColumn(col, cols))
			}
		}
	}

	return errs.ToError()
}

func unknownColumn(col string, known []string) error {
	if s := Suggest(col, known); s != "" {
		return fmt.Errorf("unknown column %q, did you mean %q?", col, s)
	}
	return fmt.Errorf("unknown column %q", col)
}

// Suggest returns the candidate closest to name by edit distance, or "" when
// nothing is within half the name's length.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(len(name)/2, 2) {
		return ""
	}
	return best
}

func trimSort(s string) string {
	if len(s) > 0 && s[0] == '-' {
		return s[1:]
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
