package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/pkg/utils"
)

// Flags are the root-level options shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Mute       bool

	// Config is loaded in the root Before hook.
	Config *config.Config

	// Console receives console logging. The TUI holds it while it owns the
	// terminal.
	Console *utils.DeferredWriter
}

// LogPath is the explicit --log-file, or ticktock.log in the data dir.
func (f *Flags) LogPath() string {
	if f.LogFile != "" {
		return f.LogFile
	}
	return filepath.Join(f.DataDir, "ticktock.log")
}

// xdgDir resolves $env/ticktock, falling back to ~/<fallback...>/ticktock.
func xdgDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, "ticktock")
}

// DefaultConfigPath is $XDG_CONFIG_HOME/ticktock/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.yaml")
}

// DefaultDataDir is $XDG_DATA_HOME/ticktock, home of the database and log.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}
