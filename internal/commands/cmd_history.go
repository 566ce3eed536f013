package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type HistoryCmd struct {
	flags *Flags
	app   *ticktock.App

	// flags
	jsonOutput bool
	limit      int
	level      string
	timerID    string
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *ticktock.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "Show recent timer notifications",
		UsageText: "ticktock history [--json] [--limit N] [--level LEVEL] [--timer ID]",
		Description: `Lists notifications recorded when timers finish, are removed, or are reset,
newest first. Entries older than history.retention are pruned while the TUI runs.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum entries to show (0 for all)",
				Value:       20,
				Destination: &cmd.limit,
			},
			&cli.StringFlag{
				Name:        "level",
				Usage:       "only show entries at this level (info, warning, error)",
				Destination: &cmd.level,
			},
			&cli.StringFlag{
				Name:        "timer",
				Usage:       "only show entries for this timer id",
				Destination: &cmd.timerID,
			},
		},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:      "clear",
				Usage:     "Delete all notifications",
				UsageText: "ticktock history clear",
				Action:    cmd.runClear,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	filter := notify.Filter{TimerID: cmd.timerID, Limit: cmd.limit}
	if cmd.level != "" {
		level, err := notify.ParseLevel(cmd.level)
		if err != nil {
			return err
		}
		filter.Level = level
	}

	items, err := cmd.app.Notifications.List(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	items = filter.Apply(items)

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, n := range items {
			if err := iojson.WriteLine(out, n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		printer.Ctx(ctx).Infof("No notifications yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE")
	for _, n := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt.Local().Format("2006-01-02 15:04:05"), n.Level, n.Message)
	}
	return w.Flush()
}

func (cmd *HistoryCmd) runClear(ctx context.Context, _ *cli.Command) error {
	count, err := cmd.app.Notifications.Clear(ctx)
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Deleted %d notification(s)", count)
	return nil
}
