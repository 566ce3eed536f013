// Package ticktock holds the timer store and the services that the CLI and
// TUI share.
package ticktock

import (
	"context"
	"io"

	"github.com/colonyops/ticktock/internal/core/alert"
	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/kv"
	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/data/db"
	"github.com/colonyops/ticktock/pkg/executil"
	"github.com/rs/zerolog"
)

// App is the central entry point for all ticktock operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config        *config.Config
	DB            *db.DB
	KV            kv.KV
	Notifications notify.Store
	Bus           *eventbus.EventBus
	Exec          executil.Executor
	Clock         Clock
	Persister     *Persister

	// Set by Open.
	Store  *Store
	Alerts *alert.Manager

	logger zerolog.Logger
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	cfg *config.Config,
	database *db.DB,
	kvStore kv.KV,
	notifications notify.Store,
	bus *eventbus.EventBus,
	exec executil.Executor,
	logger zerolog.Logger,
) *App {
	return &App{
		Config:        cfg,
		DB:            database,
		KV:            kvStore,
		Notifications: notifications,
		Bus:           bus,
		Exec:          exec,
		Clock:         SystemClock{},
		Persister:     NewPersister(kvStore, logger),
		logger:        logger,
	}
}

// OpenOptions controls how Open builds the store.
type OpenOptions struct {
	// Sound enables the configured alert sounder. Without it alerts are
	// tracked but silent, which suits one-shot CLI commands.
	Sound bool
	// Bell receives the terminal bell in bell mode.
	Bell io.Writer
}

// Open builds the alert manager and store and restores persisted state.
func (a *App) Open(ctx context.Context, opts OpenOptions) *Store {
	var sounder alert.Sounder = alert.Nop{}
	if opts.Sound {
		sounder = a.Sounder(opts.Bell)
	}

	a.Alerts = alert.NewManager(sounder, a.Config.Alert.Interval, a.logger)
	a.Store = NewStore(StoreOptions{
		Clock:        a.Clock,
		TickInterval: a.Config.TickInterval,
		Alerter:      a.Alerts,
		Bus:          a.Bus,
		Persister:    a.Persister,
		Logger:       a.logger,
	})
	a.Store.Load(ctx)
	return a.Store
}

// Sounder returns the sounder selected by alert.mode.
func (a *App) Sounder(bell io.Writer) alert.Sounder {
	switch a.Config.Alert.Mode {
	case config.AlertModeBell:
		if bell == nil {
			bell = io.Discard
		}
		return alert.NewBell(bell)
	case config.AlertModeCommand:
		return alert.NewCommand(a.Exec, a.Config.Alert.Command)
	default:
		return alert.Nop{}
	}
}

// Close stops the store loop and every alert. Safe to call without Open.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Alerts != nil {
		a.Alerts.Close()
	}
}
