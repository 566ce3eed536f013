package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

// timerCompleter suggests refs for the timers an action applies to: those in
// status needs, or every timer when needs is empty. A name shared by several
// timers is not a usable ref, so those timers are offered by id. Flag
// completion takes over once the last argument starts with "-".
func timerCompleter(app *ticktock.App, needs timer.Status) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() && strings.HasPrefix(args.Get(args.Len()-1), "-") {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}
		if app.Persister == nil {
			return
		}

		w := cmd.Root().Writer
		for _, ref := range completionRefs(app.Persister.Load(ctx, app.Clock.Now()), needs) {
			_, _ = fmt.Fprintln(w, ref)
		}
	}
}

func completionRefs(timers []timer.Timer, needs timer.Status) []string {
	names := make(map[string]int, len(timers))
	for _, t := range timers {
		names[strings.ToLower(t.Name)]++
	}

	var refs []string
	for _, t := range timers {
		if needs != "" && t.Status != needs {
			continue
		}
		if names[strings.ToLower(t.Name)] > 1 {
			refs = append(refs, t.ID)
			continue
		}
		refs = append(refs, t.Name)
	}
	return refs
}
