package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/internal/tui"
)

const historySweepInterval = time.Hour

type TuiCmd struct {
	flags *Flags
	app   *ticktock.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *ticktock.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "mute",
			Usage:       "track completed timers without sounding alerts",
			Sources:     cli.EnvVars("TICKTOCK_MUTE"),
			Destination: &cmd.flags.Mute,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	store := cmd.app.Open(ctx, ticktock.OpenOptions{Sound: !cmd.flags.Mute, Bell: os.Stdout})

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	if cmd.app.Notifications != nil {
		go ticktock.SweepHistory(sweepCtx, cmd.app.Notifications, cmd.app.Config.History.Retention,
			historySweepInterval, cmd.app.Clock, logging.Component("history"))
	}

	m := tui.New(ctx, tui.Deps{
		Config: cmd.app.Config,
		Store:  store,
		Bus:    cmd.app.Bus,
		Logger: log.Logger,
	})

	if cmd.flags.Console != nil {
		cmd.flags.Console.Hold()
		defer func() {
			if err := cmd.flags.Console.Release(); err != nil {
				log.Warn().Err(err).Msg("failed to flush console log")
			}
		}()
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
