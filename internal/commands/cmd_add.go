package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

type AddCmd struct {
	flags *Flags
	app   *ticktock.App

	// flags
	minutes int
	seconds int
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *ticktock.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Start a new timer",
		UsageText: "ticktock add <name> [duration]",
		Description: `Starts a named countdown timer.

The duration accepts seconds ("90"), minutes and seconds ("1:30"),
hours ("1:02:03"), or Go durations ("3m", "1m30s"). Without a duration
the --minutes and --seconds flags are used, and without those the
defaults.duration config value.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "minutes",
				Aliases:     []string{"m"},
				Usage:       "duration minutes",
				Destination: &cmd.minutes,
			},
			&cli.IntFlag{
				Name:        "seconds",
				Aliases:     []string{"s"},
				Usage:       "duration seconds",
				Destination: &cmd.seconds,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	name := c.Args().Get(0)
	secs, err := cmd.duration(c)
	if err != nil {
		return err
	}

	t, err := openStore(ctx, cmd.app).Add(ctx, name, secs)
	if err != nil {
		return fmt.Errorf("add timer: %w", err)
	}

	p.Successf("Started %q for %s (%s)", t.Name, timer.FormatRemaining(t.Duration), shortID(t.ID))
	return nil
}

func (cmd *AddCmd) duration(c *cli.Command) (int, error) {
	switch {
	case c.Args().Len() > 1:
		return timer.ParseDuration(c.Args().Get(1))
	case cmd.minutes != 0 || cmd.seconds != 0:
		return timer.FromMinutesSeconds(cmd.minutes, cmd.seconds), nil
	default:
		return cmd.app.Config.Defaults.Seconds(), nil
	}
}
