package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type LsCmd struct {
	flags *Flags
	app   *ticktock.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *ticktock.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List all timers",
		UsageText: "ticktock ls [--json]",
		Description: `Displays a table of all timers with their status and remaining time.

Use --json for one JSON object per timer.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// timerInfo is the JSON output format for ticktock ls --json.
type timerInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Remaining  int        `json:"remaining"`
	Duration   int        `json:"duration"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishesAt *time.Time `json:"finishes_at,omitempty"`
}

func newTimerInfo(t timer.Timer) timerInfo {
	info := timerInfo{
		ID:        t.ID,
		Name:      t.Name,
		Status:    string(t.Status),
		Remaining: t.Remaining,
		Duration:  t.Duration,
		CreatedAt: t.CreatedAt,
	}
	if !t.FinishesAt.IsZero() {
		finishes := t.FinishesAt
		info.FinishesAt = &finishes
	}
	return info
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	store := openStore(ctx, cmd.app)
	timers := store.Timers()
	out := c.Root().Writer

	// JSON output mode
	if cmd.jsonOutput {
		for _, t := range timers {
			if err := iojson.WriteLine(out, newTimerInfo(t)); err != nil {
				return fmt.Errorf("encode timer: %w", err)
			}
		}
		return nil
	}

	p := printer.Ctx(ctx)
	if len(timers) == 0 {
		p.Infof("No timers found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tREMAINING\tDURATION")
	for _, t := range timers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), t.Name, t.Status, timer.FormatRemaining(t.Remaining), timer.FormatRemaining(t.Duration))
	}
	_ = w.Flush()

	if store.GloballyPaused() {
		p.Warnf("All timers are paused. Run 'ticktock resume-all' to continue")
	}

	return nil
}
