package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

// timerAction is a command that applies one store action to one timer.
type timerAction struct {
	name  string
	usage string
	done  string       // past tense for the success line
	needs timer.Status // status the action applies to, empty for any
	apply func(*ticktock.Store, context.Context, string) bool
}

var timerActions = []timerAction{
	{"pause", "Pause a running timer", "Paused", timer.StatusRunning, (*ticktock.Store).PauseOne},
	{"resume", "Resume a paused timer", "Resumed", timer.StatusPaused, (*ticktock.Store).ResumeOne},
	{"restart", "Restart a paused timer from its full duration", "Restarted", timer.StatusPaused, (*ticktock.Store).Restart},
	{"repeat", "Run a completed timer again", "Repeating", timer.StatusCompleted, (*ticktock.Store).Repeat},
	{"revive", "Run a dismissed timer again", "Revived", timer.StatusDismissed, (*ticktock.Store).Revive},
	{"dismiss", "Silence a completed timer", "Dismissed", timer.StatusCompleted, (*ticktock.Store).Dismiss},
	{"remove", "Delete a timer", "Removed", "", (*ticktock.Store).Remove},
}

type TimerCmd struct {
	flags *Flags
	app   *ticktock.App
}

// NewTimerCmd creates the per-timer action commands
func NewTimerCmd(flags *Flags, app *ticktock.App) *TimerCmd {
	return &TimerCmd{flags: flags, app: app}
}

// Register adds one command per timer action to the application
func (cmd *TimerCmd) Register(app *cli.Command) *cli.Command {
	for _, action := range timerActions {
		app.Commands = append(app.Commands, &cli.Command{
			Name:          action.name,
			Usage:         action.usage,
			UsageText:     fmt.Sprintf("ticktock %s <id|name>", action.name),
			ShellComplete: timerCompleter(cmd.app, action.needs),
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, action)
			},
		})
	}

	return app
}

func (cmd *TimerCmd) run(ctx context.Context, c *cli.Command, action timerAction) error {
	p := printer.Ctx(ctx)
	store := openStore(ctx, cmd.app)

	t, err := findTimer(store, c)
	if err != nil {
		return err
	}

	if !action.apply(store, ctx, t.ID) {
		current, _ := store.Get(t.ID)
		p.Infof("%q is %s; %s only applies to %s timers", t.Name, current.Status, action.name, action.needs)
		return nil
	}

	p.Successf("%s %q", action.done, t.Name)
	return nil
}
