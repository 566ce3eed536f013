package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPaths_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, filepath.FromSlash("/xdg/config/ticktock/config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.FromSlash("/xdg/data/ticktock"), DefaultDataDir())
}

func TestDefaultPaths_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	assert.Equal(t, filepath.Join(home, ".config", "ticktock", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(home, ".local", "share", "ticktock"), DefaultDataDir())
}

func TestFlags_LogPath(t *testing.T) {
	f := &Flags{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "ticktock.log"), f.LogPath())

	f.LogFile = "-"
	assert.Equal(t, "-", f.LogPath())
}
