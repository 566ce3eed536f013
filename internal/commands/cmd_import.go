package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

// ImportEntry is one timer in an import document.
type ImportEntry struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

type ImportCmd struct {
	flags *Flags
	app   *ticktock.App

	reader iojson.FileReader[[]ImportEntry]

	// flags
	dryRun bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *ticktock.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Start several timers from JSON",
		UsageText: "ticktock import [-f timers.json] [--dry-run]",
		Description: `Reads a JSON array of timers and starts each one in order.

  [{"name": "Tea", "duration": "3m"}, {"name": "Eggs", "duration": "7:30"}]

Every entry is validated first; nothing is started if any entry is invalid.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "validate without starting timers",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})

	return app
}

type plannedTimer struct {
	name string
	secs int
}

// plan validates entries and resolves their durations.
func plan(entries []ImportEntry) ([]plannedTimer, error) {
	var errs criterio.FieldErrorsBuilder
	planned := make([]plannedTimer, 0, len(entries))

	for i, e := range entries {
		secs, err := timer.ParseDuration(e.Duration)
		if err != nil {
			errs = errs.Append(fmt.Sprintf("[%d].duration", i), err)
			continue
		}
		if err := timer.Validate(e.Name, secs); err != nil {
			errs = errs.Append(fmt.Sprintf("[%d].name", i), err)
			continue
		}
		planned = append(planned, plannedTimer{name: e.Name, secs: secs})
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return planned, nil
}

func (cmd *ImportCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	entries, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}

	planned, err := plan(entries)
	if err != nil {
		return fmt.Errorf("invalid import: %w", err)
	}

	if cmd.dryRun {
		for _, t := range planned {
			p.Printf("  %s  %s", timer.FormatRemaining(t.secs), t.name)
		}
		p.Successf("%d timer(s) would be started", len(planned))
		return nil
	}

	store := openStore(ctx, cmd.app)
	for _, t := range planned {
		if _, err := store.Add(ctx, t.name, t.secs); err != nil {
			return fmt.Errorf("add %q: %w", t.name, err)
		}
	}

	p.Successf("Started %d timer(s)", len(planned))
	return nil
}
