package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/data/db"
	"github.com/colonyops/ticktock/internal/data/stores"
	"github.com/colonyops/ticktock/internal/printer"
	"github.com/colonyops/ticktock/internal/ticktock"
	"github.com/colonyops/ticktock/internal/ticktock/clocktest"
	"github.com/colonyops/ticktock/pkg/executil"
)

var epoch = time.UnixMilli(1_700_000_000_000)

type testEnv struct {
	flags *Flags
	app   *ticktock.App
	clock *clocktest.Clock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	app := ticktock.NewApp(&cfg, database, stores.NewMemoryKV(), stores.NewNotifyStore(database), nil,
		&executil.RecordingExecutor{}, zerolog.Nop())
	clock := clocktest.New(epoch)
	app.Clock = clock

	flags := &Flags{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		DataDir:    cfg.DataDir,
		Config:     &cfg,
	}
	return &testEnv{flags: flags, app: app, clock: clock}
}

// run executes one CLI invocation. The store is closed afterwards so the
// next invocation restores it from persistence, as a new process would.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := &cli.Command{
		Name:           "ticktock",
		Writer:         &buf,
		ErrWriter:      &buf,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewAddCmd(e.flags, e.app).Register(root)
	root = NewLsCmd(e.flags, e.app).Register(root)
	root = NewTimerCmd(e.flags, e.app).Register(root)
	root = NewAllCmd(e.flags, e.app).Register(root)
	root = NewImportCmd(e.flags, e.app).Register(root)
	root = NewClearCmd(e.flags, e.app).Register(root)
	root = NewHistoryCmd(e.flags, e.app).Register(root)
	root = NewConfigValidateCmd(e.flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&buf))
	err := root.Run(ctx, append([]string{"ticktock"}, args...))

	e.app.Close()
	e.app.Store = nil
	return buf.String(), err
}

func (e *testEnv) timers(t *testing.T) []timer.Timer {
	t.Helper()
	return e.app.Persister.Load(context.Background(), e.clock.Now())
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()
	var items []T
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var v T
		require.NoError(t, json.Unmarshal([]byte(line), &v), line)
		items = append(items, v)
	}
	return items
}

func TestAddCmd_DurationSources(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"positional", []string{"add", "Tea", "1:30"}, 90},
		{"flags", []string{"add", "--minutes", "2", "--seconds", "5", "Tea"}, 125},
		{"config default", []string{"add", "Tea"}, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			out, err := env.run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, `Started "Tea"`)

			timers := env.timers(t)
			require.Len(t, timers, 1)
			assert.Equal(t, tt.want, timers[0].Duration)
			assert.Equal(t, timer.StatusRunning, timers[0].Status)
		})
	}
}

func TestAddCmd_RejectsInvalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "add", "   ", "90")
	require.ErrorIs(t, err, timer.ErrEmptyName)

	_, err = env.run(t, "add", "Tea", "0")
	require.Error(t, err)

	assert.Empty(t, env.timers(t))
}

func TestLsCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add", "Tea", "3:00")
	require.NoError(t, err)
	_, err = env.run(t, "add", "Eggs", "7:00")
	require.NoError(t, err)

	env.clock.Advance(30 * time.Second)
	out, err := env.run(t, "ls", "--json")
	require.NoError(t, err)

	infos := decodeLines[timerInfo](t, out)
	require.Len(t, infos, 2)
	assert.Equal(t, "Tea", infos[0].Name)
	assert.Equal(t, "running", infos[0].Status)
	assert.Equal(t, 180, infos[0].Duration)
	require.NotNil(t, infos[0].FinishesAt)
	assert.Equal(t, "Eggs", infos[1].Name)
}

func TestLsCmd_Table(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No timers found")

	_, err = env.run(t, "add", "Tea", "3:00")
	require.NoError(t, err)
	_, err = env.run(t, "pause-all")
	require.NoError(t, err)

	out, err = env.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Tea")
	assert.Contains(t, out, "paused")
	assert.Contains(t, out, "resume-all")
}

func TestTimerCmd_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add", "Tea", "10")
	require.NoError(t, err)

	out, err := env.run(t, "pause", "tea")
	require.NoError(t, err)
	assert.Contains(t, out, `Paused "Tea"`)
	assert.Equal(t, timer.StatusPaused, env.timers(t)[0].Status)

	// Wrong status is reported, not failed.
	out, err = env.run(t, "dismiss", "Tea")
	require.NoError(t, err)
	assert.Contains(t, out, "only applies to completed timers")

	_, err = env.run(t, "resume", "Tea")
	require.NoError(t, err)

	env.clock.Advance(11 * time.Second)
	_, err = env.run(t, "dismiss", "Tea")
	require.NoError(t, err)
	assert.Equal(t, timer.StatusDismissed, env.timers(t)[0].Status)

	_, err = env.run(t, "revive", "Tea")
	require.NoError(t, err)
	got := env.timers(t)[0]
	assert.Equal(t, timer.StatusRunning, got.Status)
	assert.Equal(t, 10, got.Remaining)

	_, err = env.run(t, "remove", got.ID[:4])
	require.NoError(t, err)
	assert.Empty(t, env.timers(t))
}

func TestTimerCmd_UnknownRef(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "pause", "nothing")
	require.ErrorIs(t, err, ticktock.ErrNoMatch)

	_, err = env.run(t, "pause")
	require.Error(t, err)
}

func TestAllCmd(t *testing.T) {
	env := newTestEnv(t)
	for _, args := range [][]string{{"add", "a", "30"}, {"add", "b", "60"}} {
		_, err := env.run(t, args...)
		require.NoError(t, err)
	}

	out, err := env.run(t, "pause-all")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused 2 timer(s)")
	assert.True(t, env.app.Persister.LoadGlobalPause(context.Background()))

	out, err = env.run(t, "resume-all")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumed 2 timer(s)")

	env.clock.Advance(time.Minute)
	out, err = env.run(t, "reset-all")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset 2 timer(s)")
	for _, tm := range env.timers(t) {
		assert.Equal(t, timer.StatusRunning, tm.Status)
		assert.Equal(t, tm.Duration, tm.Remaining)
	}
}

func TestImportCmd(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "timers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Tea","duration":"3m"},{"name":"Eggs","duration":"7:30"}]`), 0o644))

	out, err := env.run(t, "import", "--dry-run", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 timer(s) would be started")
	assert.Empty(t, env.timers(t))

	_, err = env.run(t, "import", "-f", path)
	require.NoError(t, err)
	timers := env.timers(t)
	require.Len(t, timers, 2)
	assert.Equal(t, 450, timers[1].Duration)
}

func TestPlan(t *testing.T) {
	_, err := plan([]ImportEntry{
		{Name: "Tea", Duration: "3m"},
		{Name: "", Duration: "1m"},
		{Name: "Eggs", Duration: "soon"},
	})
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"[1].name", "[2].duration"}, fields)

	planned, err := plan([]ImportEntry{{Name: "Tea", Duration: "90"}})
	require.NoError(t, err)
	assert.Equal(t, []plannedTimer{{name: "Tea", secs: 90}}, planned)
}

func TestClearCmd(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add", "Tea", "90")
	require.NoError(t, err)

	out, err := env.run(t, "clear")
	require.Error(t, err)
	assert.Contains(t, out, "--yes")
	assert.Len(t, env.timers(t), 1)

	_, err = env.run(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Empty(t, env.timers(t))
}

func TestHistoryCmd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No notifications yet")

	for i, msg := range []string{`timer "Tea" finished`, `timer "Eggs" finished`, "reset 2 timers"} {
		_, err := env.app.Notifications.Save(ctx, notify.Notification{
			Level:     notify.LevelInfo,
			Message:   msg,
			CreatedAt: epoch.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	_, err = env.app.Notifications.Save(ctx, notify.Notification{
		Level:     notify.LevelWarning,
		TimerID:   "abc123",
		Message:   "alert command failed",
		CreatedAt: epoch.Add(10 * time.Minute),
	})
	require.NoError(t, err)

	out, err = env.run(t, "history", "--json", "--limit", "2", "--level", "info")
	require.NoError(t, err)
	items := decodeLines[notify.Notification](t, out)
	require.Len(t, items, 2)
	assert.Equal(t, "reset 2 timers", items[0].Message)

	out, err = env.run(t, "history", "--json", "--timer", "abc123")
	require.NoError(t, err)
	items = decodeLines[notify.Notification](t, out)
	require.Len(t, items, 1)
	assert.Equal(t, notify.LevelWarning, items[0].Level)

	_, err = env.run(t, "history", "--level", "loud")
	require.Error(t, err)

	out, err = env.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, `timer "Tea" finished`)

	out, err = env.run(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 4 notification(s)")

	count, err := env.app.Notifications.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestConfigValidateCmd(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.run(t, "config", "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
	})

	t.Run("json report lists field errors", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, os.WriteFile(env.flags.ConfigPath, []byte("alert:\n  mode: siren\n"), 0o644))

		out, err := env.run(t, "config", "validate", "--format", "json")
		require.Error(t, err)

		var report validationReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.False(t, report.Valid)
		require.NotEmpty(t, report.Errors)
		assert.Equal(t, "alert.mode", report.Errors[0].Field)
	})
}
