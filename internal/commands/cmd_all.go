package commands

import (
	"context"

	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

type AllCmd struct {
	flags *Flags
	app   *ticktock.App
}

// NewAllCmd creates the commands that act on every timer at once
func NewAllCmd(flags *Flags, app *ticktock.App) *AllCmd {
	return &AllCmd{flags: flags, app: app}
}

// Register adds pause-all, resume-all and reset-all to the application
func (cmd *AllCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "pause-all",
			Usage:     "Pause every running timer",
			UsageText: "ticktock pause-all",
			Action: func(ctx context.Context, c *cli.Command) error {
				n := openStore(ctx, cmd.app).PauseAll(ctx)
				printer.Ctx(ctx).Successf("Paused %d timer(s)", n)
				return nil
			},
		},
		&cli.Command{
			Name:      "resume-all",
			Usage:     "Resume every paused timer",
			UsageText: "ticktock resume-all",
			Action: func(ctx context.Context, c *cli.Command) error {
				n := openStore(ctx, cmd.app).ResumeAll(ctx)
				printer.Ctx(ctx).Successf("Resumed %d timer(s)", n)
				return nil
			},
		},
		&cli.Command{
			Name:      "reset-all",
			Usage:     "Restart every timer from its full duration",
			UsageText: "ticktock reset-all",
			Description: `Restarts every timer, whatever its status, and silences all alerts.
Also clears the global pause.`,
			Action: func(ctx context.Context, c *cli.Command) error {
				n := openStore(ctx, cmd.app).ResetAll(ctx)
				printer.Ctx(ctx).Successf("Reset %d timer(s)", n)
				return nil
			},
		},
	)

	return app
}
