package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPaths_FollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, filepath.Join("/xdg/config", "tvconsole", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/xdg/data", "tvconsole"), DefaultDataDir())
}

func TestDefaultPaths_FallBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	assert.Equal(t, filepath.Join(home, ".config", "tvconsole", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(home, ".local", "share", "tvconsole"), DefaultDataDir())
}
