package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/urfave/cli/v3"
)

// openStore restores the store without sound; headless commands never ring.
func openStore(ctx context.Context, app *ticktock.App) *ticktock.Store {
	if app.Store != nil {
		return app.Store
	}
	return app.Open(ctx, ticktock.OpenOptions{})
}

// findTimer resolves the first positional argument to a timer.
func findTimer(store *ticktock.Store, c *cli.Command) (timer.Timer, error) {
	ref := c.Args().First()
	if ref == "" {
		return timer.Timer{}, fmt.Errorf("timer id or name is required")
	}
	return store.Find(ref)
}

// shortID trims ids for display. Find accepts any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
