package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ticktock/internal/commands"
	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/internal/core/styles"
	"github.com/colonyops/ticktock/internal/data/db"
	"github.com/colonyops/ticktock/internal/data/stores"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/pkg/executil"
	"github.com/colonyops/ticktock/pkg/logutils"
	"github.com/colonyops/ticktock/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &ticktock.App{}
		database  *db.DB
		busCancel context.CancelFunc
		busDone   chan struct{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "ticktock",
		Usage:     "Run several named countdown timers at once",
		UsageText: "ticktock [global options] command [command options]",
		Description: `ticktock keeps any number of named countdown timers. Each one can be
paused, resumed, restarted, dismissed when it rings, and run again.

Timers survive restarts: their state is saved on every change and the
remaining time is recovered from the wall clock when ticktock starts.

Run 'ticktock' with no arguments to open the interactive timer screen.
Run 'ticktock add tea 3:00' to start a timer from the shell.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TICKTOCK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr (defaults to <data-dir>/ticktock.log)",
				Sources:     cli.EnvVars("TICKTOCK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TICKTOCK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TICKTOCK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			flags.Console = utils.NewDeferredWriter(os.Stderr)
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogPath(), flags.Console)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				// config validate reports the problem itself.
				if c.Args().First() != "config" {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				defaults := config.DefaultConfig()
				defaults.DataDir = flags.DataDir
				cfg = &defaults
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DataDir, dbOpts)
			if err != nil {
				if stores.IsCorruptionError(err) {
					return ctx, fmt.Errorf("open database: %w (move %s aside to start fresh)", err, db.Path(cfg.DataDir))
				}
				return ctx, fmt.Errorf("open database: %w", err)
			}

			kvStore := stores.NewKVStore(database)
			notifyStore := stores.NewNotifyStore(database)

			bus := eventbus.New(256)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			eventbus.NewNotificationRouter(bus).Register()
			eventbus.RecordNotifications(bus, notifyStore, logging.Component("history"))

			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			busDone = make(chan struct{})
			go func() {
				defer close(busDone)
				bus.Start(busCtx)
			}()

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *ticktock.NewApp(
				cfg,
				database,
				kvStore,
				notifyStore,
				bus,
				&executil.RealExecutor{},
				logging.Component("app"),
			)

			return printer.NewContext(ctx, printer.New(os.Stdout)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			app.Close()

			// Deliver buffered events before the database goes away
			if busCancel != nil {
				busCancel()
				<-busDone
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if flags.Console != nil {
				_ = flags.Console.Release()
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewAddCmd(flags, app).Register(root)
	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewTimerCmd(flags, app).Register(root)
	root = commands.NewAllCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewClearCmd(flags, app).Register(root)
	root = commands.NewHistoryCmd(flags, app).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'ticktock --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
