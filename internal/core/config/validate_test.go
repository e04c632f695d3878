package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = Columns{
	TableStreams: {"select", "expand", "name", "url", "account", "group", "active"},
	TableUsers:   {"select", "expand", "username", "email", "role", "last_login"},
}

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Tables[TableStreams] = TableConfig{
		Hide:   []string{"url", "acc*"},
		Widths: map[string]int{"name": 20},
		Sort:   "-name",
	}

	assert.NoError(t, cfg.ValidateDeep("", testColumns))
}

func TestValidateDeep_UnknownColumnsSuggest(t *testing.T) {
	cfg := validConfig(t)
	cfg.Tables[TableUsers] = TableConfig{
		Widths: map[string]int{"emial": 10, "zzzzzz": 4},
		Sort:   "-usernam",
	}

	err := cfg.ValidateDeep("", testColumns)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 3)

	assert.Equal(t, "tables.users.widths.emial", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), `did you mean "email"`)
	assert.Equal(t, "tables.users.widths.zzzzzz", fieldErrs[1].Field)
	assert.NotContains(t, fieldErrs[1].Err.Error(), "did you mean")
	assert.Equal(t, "tables.users.sort", fieldErrs[2].Field)
	assert.Contains(t, fieldErrs[2].Err.Error(), `did you mean "username"`)
}

func TestValidateDeep_InvalidGlob(t *testing.T) {
	cfg := validConfig(t)
	cfg.Tables[TableStreams] = TableConfig{Hide: []string{"[url"}}

	err := cfg.ValidateDeep("", testColumns)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "tables.streams.hide[0]", fieldErrs[0].Field)
}

func TestValidateDeep_InvalidLogLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogLevel = "loud"

	err := cfg.ValidateDeep("", testColumns)
	assert.ErrorContains(t, err, "invalid level")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep(t.TempDir(), testColumns)
	assert.ErrorContains(t, err, "is a directory")
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("", testColumns)
	assert.ErrorContains(t, err, "not a directory")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.Tables[TableUsers] = TableConfig{Hide: []string{"*"}}
	cfg.Tables[TableStreams] = TableConfig{Hide: []string{"url"}, Sort: "url"}

	warnings := cfg.Warnings(testColumns)
	require.Len(t, warnings, 2)
	assert.Equal(t, "streams", warnings[0].Item)
	assert.Contains(t, warnings[0].Message, "hidden")
	assert.Equal(t, "users", warnings[1].Item)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"typo", "chanels", "channels"},
		{"exact", "epg", "epg"},
		{"too far", "something", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.in, TableNames))
		})
	}
}
