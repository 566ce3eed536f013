package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/colonyops/ticktock/pkg/tmpl"
	"github.com/hay-kot/criterio"
)

// AlertTemplateData is what the alert command template is executed with.
type AlertTemplateData struct {
	ID   string
	Name string
}

// sampleAlert stands in for a real timer when checking the alert template.
var sampleAlert = AlertTemplateData{ID: "0b7e2c1a", Name: "Tea"}

// ValidationWarning is a config issue that does not stop ticktock running.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep runs Validate, then checks against the filesystem: the config
// file at configPath (skipped when empty), the data directory, and the alert
// command template.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		criterio.Run("config_file", configPath, pathKind(false)),
		criterio.Run("data_dir", c.DataDir, pathKind(true)),
		c.validateAlertCommand(),
	)
}

// pathKind accepts a path that is missing, or exists as a directory when
// wantDir is set and as a file otherwise. Empty paths pass.
func pathKind(wantDir bool) func(string) error {
	return func(path string) error {
		if path == "" {
			return nil
		}
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return fmt.Errorf("cannot access: %w", err)
		case wantDir && !info.IsDir():
			return fmt.Errorf("%s exists but is not a directory", path)
		case !wantDir && info.IsDir():
			return fmt.Errorf("%s is a directory, not a file", path)
		}
		return nil
	}
}

func (c *Config) validateAlertCommand() error {
	if c.Alert.Mode != AlertModeCommand {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	if _, err := renderAlertCommand(c.Alert.Command); err != nil {
		errs = errs.Append("alert.command", fmt.Errorf("template error: %w", err))
	}
	if _, err := exec.LookPath("sh"); err != nil {
		errs = errs.Append("alert.command", errors.New("sh not found on PATH"))
	}
	return errs.ToError()
}

func renderAlertCommand(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", errors.New("empty template")
	}
	return tmpl.Render(src, sampleAlert)
}

// Warnings lists non-fatal issues in a config that already passed Validate.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning
	warn := func(category, item, format string, args ...any) {
		warnings = append(warnings, ValidationWarning{Category: category, Item: item, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case c.Alert.Mode != AlertModeCommand && c.Alert.Command != "":
		warn("Alert", "alert.command", "command is ignored while alert.mode is %q", c.Alert.Mode)
	case c.Alert.Mode == AlertModeCommand:
		if program := firstWord(c.Alert.Command); program != "" {
			if _, err := exec.LookPath(program); err != nil {
				warn("Alert", "alert.command", "%s is not on PATH; the alert will fail unless it is a shell builtin", program)
			}
		}
	}

	if c.TickInterval > 500*time.Millisecond {
		warn("Timing", "tick_interval", "intervals above 500ms make the countdown visibly skip seconds")
	}

	return warnings
}

// firstWord is the program a command template starts with, or "" when it
// starts with shell syntax or a template action.
func firstWord(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 || strings.ContainsAny(fields[0], "{$()<>|&;'\"`=") {
		return ""
	}
	return fields[0]
}
