// Package alert plays repeating audible signals for completed timers.
package alert

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/pkg/kv"
	"github.com/rs/zerolog"
)

// DefaultInterval is the gap between repeated beeps for one timer.
const DefaultInterval = 2 * time.Second

// Alerter starts and stops the repeating alert for a timer id.
type Alerter interface {
	Start(id, name string)
	Stop(id string)
	StopAll()
}

// Target identifies the timer being signalled.
type Target struct {
	ID   string
	Name string
}

// Sounder produces one audible signal.
type Sounder interface {
	Sound(ctx context.Context, t Target) error
}

// Manager runs one repeating signal per timer id. At most one signal runs
// for a given id. Sound failures are logged and never stop the repetition.
type Manager struct {
	sounder  Sounder
	interval time.Duration
	logger   zerolog.Logger

	active *kv.Store[string, context.CancelFunc]
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewManager creates a manager that calls s every interval while an alert is
// active. A non-positive interval uses DefaultInterval.
func NewManager(s Sounder, interval time.Duration, logger zerolog.Logger) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		sounder:  s,
		interval: interval,
		logger:   logging.From(logger, "alert"),
		active:   kv.New[string, context.CancelFunc](),
	}
}

// Start begins the alert for id. The first signal fires immediately. Starting
// an id that is already alerting does nothing.
func (m *Manager) Start(id, name string) {
	if m.closed.Load() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if !m.active.SetIfAbsent(id, cancel) {
		cancel()
		return
	}

	m.logger.Debug().Str("timer_id", id).Msg("alert started")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(ctx, Target{ID: id, Name: name})
	}()
}

// Stop ends the alert for id. Stopping an id with no alert does nothing.
func (m *Manager) Stop(id string) {
	if cancel, ok := m.active.Pop(id); ok {
		cancel()
		m.logger.Debug().Str("timer_id", id).Msg("alert stopped")
	}
}

// StopAll ends every active alert.
func (m *Manager) StopAll() {
	for _, cancel := range m.active.Drain() {
		cancel()
	}
}

// Active reports whether id currently has an alert.
func (m *Manager) Active(id string) bool {
	_, ok := m.active.Get(id)
	return ok
}

// State returns the sorted ids with an active alert.
func (m *Manager) State() []string {
	return kv.SortedKeys(m.active)
}

// Close stops every alert, waits for their goroutines, and rejects later Starts.
func (m *Manager) Close() {
	m.closed.Store(true)
	m.StopAll()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context, t Target) {
	m.sound(ctx, t)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sound(ctx, t)
		}
	}
}

func (m *Manager) sound(ctx context.Context, t Target) {
	if ctx.Err() != nil {
		return
	}
	if err := m.sounder.Sound(ctx, t); err != nil {
		m.logger.Warn().Err(err).Str("timer_id", t.ID).Msg("alert sound failed")
	}
}
