package commands

import (
	"context"
	"errors"

	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "ticktock config validate [options]",
				Description: "Validates the configuration file, checking field values, the alert command template, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one failed field in the JSON report.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) report() validationReport {
	var report validationReport

	// Load again so that a config rejected in the Before hook is still reported.
	cfg, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)
	if err == nil {
		err = cfg.ValidateDeep(cmd.flags.ConfigPath)
		report.Warnings = cfg.Warnings()
	}

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	default:
		report.Errors = append(report.Errors, validationError{Field: "config", Message: err.Error()})
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := cmd.report()

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, report); err != nil {
			return err
		}
		if !report.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(printer.Ctx(ctx), report)
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, report validationReport) error {
	for _, warn := range report.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, e := range report.Errors {
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(report.Errors))
	return cli.Exit("", 1)
}
