package ticktock

import (
	"context"
	"time"

	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/rs/zerolog"
)

// SweepHistory prunes notifications older than retention once immediately and
// then every interval. It blocks until ctx is cancelled. A non-positive
// retention disables pruning.
func SweepHistory(ctx context.Context, store notify.Store, retention, interval time.Duration, clock Clock, logger zerolog.Logger) {
	if retention <= 0 {
		return
	}

	sweep := func() {
		n, err := store.Prune(ctx, clock.Now().Add(-retention))
		if err != nil {
			logger.Debug().Err(err).Msg("history sweep failed")
			return
		}
		if n > 0 {
			logger.Debug().Int64("removed", n).Msg("history swept")
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
