package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

type ClearCmd struct {
	flags *Flags
	app   *ticktock.App

	// flags
	yes bool
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *ticktock.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Delete all saved timers",
		UsageText: "ticktock clear --yes",
		Description: `Removes the saved timer collection and the global pause flag.
Completion history is kept; use 'ticktock history clear' for that.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "confirm deletion",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.yes {
		p.Warnf("This deletes every saved timer. Re-run with --yes to confirm")
		return cli.Exit("", 1)
	}

	if err := cmd.app.Persister.Clear(ctx); err != nil {
		return fmt.Errorf("clear timers: %w", err)
	}

	p.Successf("Cleared saved timers")
	return nil
}
