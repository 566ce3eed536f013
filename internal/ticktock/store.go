package ticktock

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/colonyops/ticktock/internal/core/alert"
	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTickInterval is the recomputation cadence used when none is set.
const DefaultTickInterval = 100 * time.Millisecond

const saveTimeout = 5 * time.Second

// StoreOptions configures a Store. Only Alerter is required.
type StoreOptions struct {
	Clock        Clock
	TickInterval time.Duration
	Alerter      alert.Alerter
	Bus          *eventbus.EventBus // nil disables events
	Persister    *Persister         // nil disables persistence
	Logger       zerolog.Logger
	NewID        func() string
}

// Store owns the timer collection. All mutations go through its action
// methods, which are safe for concurrent use. Actions on ids never fail: an
// unknown id or a timer in the wrong status leaves the collection unchanged
// and the action reports false.
type Store struct {
	mu             sync.Mutex
	timers         []timer.Timer
	globallyPaused bool
	completed      map[string]struct{} // ids with an active alert

	loopCancel context.CancelFunc
	loopDone   chan struct{}

	seq      uint64
	saveMu   sync.Mutex
	savedSeq uint64

	// writer tags this store's saves. observed identifies the record last
	// read or written; pending counts snapshots not yet written, during
	// which the stored record is not compared.
	writer   string
	observed string
	pending  int

	clock    Clock
	interval time.Duration
	alerts   alert.Alerter
	bus      *eventbus.EventBus
	persist  *Persister
	logger   zerolog.Logger
	newID    func() string
}

// NewStore creates an empty store. Call Load to restore persisted state.
func NewStore(opts StoreOptions) *Store {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Alerter == nil {
		opts.Alerter = alert.NewManager(alert.Nop{}, 0, opts.Logger)
	}

	return &Store{
		timers:    []timer.Timer{},
		completed: make(map[string]struct{}),
		clock:     opts.Clock,
		interval:  opts.TickInterval,
		alerts:    opts.Alerter,
		bus:       opts.Bus,
		persist:   opts.Persister,
		logger:    logging.From(opts.Logger, "store"),
		newID:     opts.NewID,
		writer:    uuid.NewString(),
	}
}

// Load replaces the collection with the persisted state, runs a
// recomputation pass, and starts the loop if any timer is active. Timers
// that were already completed when saved get their alert back but are not
// announced again. Alerts for timers that are no longer completed stop.
func (s *Store) Load(ctx context.Context) {
	var (
		rec    Record
		ok     bool
		paused bool
	)
	if s.persist != nil {
		rec, ok = s.persist.LoadRecord(ctx)
		paused = s.persist.LoadGlobalPause(ctx)
	}

	s.mu.Lock()
	now := s.clock.Now()
	s.adoptLocked(rec, ok, paused, now)
	snap := s.snapshotLocked(now)
	n := len(s.timers)
	s.mu.Unlock()

	s.logger.Info().Int("timers", n).Bool("globally_paused", paused).Msg("timers restored")
	s.save(ctx, snap)
}

// Sync adopts state written to the KV store by another process since this
// store last read or wrote it. It reports whether anything was adopted.
func (s *Store) Sync(ctx context.Context) bool {
	s.mu.Lock()
	now := s.clock.Now()
	if !s.syncLocked(ctx, now) {
		s.mu.Unlock()
		return false
	}
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.save(ctx, snap)
	return true
}

// syncLocked reloads the collection when the stored record was written by
// someone else, or removed, since it was last observed.
func (s *Store) syncLocked(ctx context.Context, now time.Time) bool {
	if s.persist == nil || s.pending > 0 {
		return false
	}
	rec, ok := s.persist.LoadRecord(ctx)
	if ok && rec.Writer == s.writer {
		return false
	}
	if recordKey(rec, ok) == s.observed {
		return false
	}

	s.adoptLocked(rec, ok, s.persist.LoadGlobalPause(ctx), now)
	s.logger.Info().Int("timers", len(s.timers)).Msg("adopted timer state saved by another process")
	return true
}

// adoptLocked installs rec as the collection. Timers completed in rec keep
// or regain their alert without a new announcement; every other tracked
// alert stops.
func (s *Store) adoptLocked(rec Record, ok, paused bool, now time.Time) {
	s.observed = recordKey(rec, ok)

	timers := []timer.Timer{}
	prior := map[string]struct{}{}
	if ok {
		for _, r := range rec.Timers {
			if timer.Status(r.Status) == timer.StatusCompleted {
				prior[r.ID] = struct{}{}
			}
		}
		timers = Recover(rec, now)
	}

	keep := make(map[string]struct{}, len(prior))
	for _, t := range timers {
		if _, was := prior[t.ID]; was && t.Status == timer.StatusCompleted {
			keep[t.ID] = struct{}{}
		}
	}
	for id := range s.completed {
		if _, ok := keep[id]; !ok {
			s.alerts.Stop(id)
		}
	}
	for _, t := range timers {
		if _, ok := keep[t.ID]; !ok {
			continue
		}
		if _, tracked := s.completed[t.ID]; !tracked {
			s.alerts.Start(t.ID, t.Name)
		}
	}

	s.timers = timers
	s.globallyPaused = paused
	s.completed = keep
	s.passLocked(now)
	s.syncLoopLocked()
}

func recordKey(rec Record, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/%d@%d", rec.Writer, rec.Revision, rec.LastSaved)
}

// Timers returns a copy of the collection in insertion order.
func (s *Store) Timers() []timer.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.timers)
}

// Get returns the timer with id.
func (s *Store) Get(id string) (timer.Timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.timers[i], true
	}
	return timer.Timer{}, false
}

// GloballyPaused reports whether PauseAll was the last global action.
func (s *Store) GloballyPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globallyPaused
}

// Looping reports whether the recomputation loop is running.
func (s *Store) Looping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopCancel != nil
}

// Alerting returns the sorted ids with an active completion alert.
func (s *Store) Alerting() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Add starts a new running timer. Invalid input changes nothing and returns
// timer.ErrEmptyName or timer.ErrInvalidDuration.
func (s *Store) Add(ctx context.Context, name string, durationSeconds int) (timer.Timer, error) {
	name = strings.TrimSpace(name)
	if err := timer.Validate(name, durationSeconds); err != nil {
		return timer.Timer{}, err
	}

	s.mu.Lock()
	now := s.clock.Now()
	s.syncLocked(ctx, now)
	t := timer.Start(s.newID(), name, durationSeconds, now)
	s.timers = append(s.timers, t)
	s.passLocked(now)
	s.syncLoopLocked()
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.logger.Info().Ctx(logging.WithTimerID(ctx, t.ID)).Str("name", t.Name).Int("duration", durationSeconds).Msg("timer added")
	s.bus.PublishTimerAdded(eventbus.TimerAddedPayload{Timer: t})
	s.save(ctx, snap)
	return t, nil
}

// PauseOne pauses a running timer.
func (s *Store) PauseOne(ctx context.Context, id string) bool {
	return s.apply(ctx, "pause", id, timer.StatusRunning, timer.Pause)
}

// ResumeOne resumes a paused timer.
func (s *Store) ResumeOne(ctx context.Context, id string) bool {
	return s.apply(ctx, "resume", id, timer.StatusPaused, timer.Resume)
}

// Restart resets a paused timer to its full duration.
func (s *Store) Restart(ctx context.Context, id string) bool {
	return s.apply(ctx, "restart", id, timer.StatusPaused, timer.Reset)
}

// Repeat runs a completed timer again from its full duration.
func (s *Store) Repeat(ctx context.Context, id string) bool {
	return s.apply(ctx, "repeat", id, timer.StatusCompleted, timer.Reset)
}

// Revive runs a dismissed timer again from its full duration.
func (s *Store) Revive(ctx context.Context, id string) bool {
	return s.apply(ctx, "revive", id, timer.StatusDismissed, timer.Reset)
}

// Dismiss silences a completed timer and moves it out of active accounting.
func (s *Store) Dismiss(ctx context.Context, id string) bool {
	t, ok := s.applyTimer(ctx, "dismiss", id, timer.StatusCompleted, func(t timer.Timer, _ time.Time) timer.Timer {
		return timer.Dismiss(t)
	})
	if ok {
		s.bus.PublishTimerDismissed(eventbus.TimerDismissedPayload{Timer: t})
	}
	return ok
}

// Remove deletes a timer from the collection and silences its alert.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	now := s.clock.Now()
	s.syncLocked(ctx, now)
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.timers[i]
	s.timers = slices.Delete(s.timers, i, i+1)
	s.clearAlertLocked(id)
	s.passLocked(now)
	s.syncLoopLocked()
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.logger.Info().Ctx(logging.WithTimerID(ctx, id)).Msg("timer removed")
	s.bus.PublishTimerRemoved(eventbus.TimerRemovedPayload{TimerID: id, Name: removed.Name})
	s.save(ctx, snap)
	return true
}

// PauseAll pauses every running timer and sets the global pause flag. It
// returns the number of timers paused.
func (s *Store) PauseAll(ctx context.Context) int {
	return s.applyAll(ctx, "pause_all", func(now time.Time) int {
		n := 0
		for i, t := range s.timers {
			if t.Status != timer.StatusRunning {
				continue
			}
			s.timers[i] = timer.Pause(t, now)
			if s.timers[i].Status == timer.StatusPaused {
				n++
			}
		}
		s.globallyPaused = true
		return n
	})
}

// ResumeAll resumes every paused timer and clears the global pause flag. It
// returns the number of timers resumed.
func (s *Store) ResumeAll(ctx context.Context) int {
	return s.applyAll(ctx, "resume_all", func(now time.Time) int {
		n := 0
		for i, t := range s.timers {
			if t.Status == timer.StatusPaused {
				s.timers[i] = timer.Resume(t, now)
				n++
			}
		}
		s.globallyPaused = false
		return n
	})
}

// ResetAll restarts every timer from its full duration, whatever its status,
// silences every alert, and clears the global pause flag.
func (s *Store) ResetAll(ctx context.Context) int {
	n := s.applyAll(ctx, "reset_all", func(now time.Time) int {
		for i, t := range s.timers {
			s.timers[i] = timer.Reset(t, now)
		}
		for id := range s.completed {
			s.clearAlertLocked(id)
		}
		s.globallyPaused = false
		return len(s.timers)
	})
	s.bus.PublishTimersReset(eventbus.TimersResetPayload{Count: n})
	return n
}

// Recompute runs one recomputation pass immediately. The TUI calls it when
// the terminal regains focus.
func (s *Store) Recompute(ctx context.Context) {
	s.mu.Lock()
	now := s.clock.Now()
	changed := s.syncLocked(ctx, now)
	changed = s.passLocked(now) || changed
	s.syncLoopLocked()
	if !changed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.save(ctx, snap)
}

// Close stops the recomputation loop, waits for it to exit, and silences
// every alert the store started. The store stays usable for reads.
func (s *Store) Close() {
	s.mu.Lock()
	done := s.loopDone
	s.stopLoopLocked()
	for id := range s.completed {
		s.alerts.Stop(id)
	}
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (s *Store) apply(ctx context.Context, action, id string, want timer.Status, fn func(timer.Timer, time.Time) timer.Timer) bool {
	_, ok := s.applyTimer(ctx, action, id, want, fn)
	return ok
}

// applyTimer is apply returning the timer as the action left it, before the
// follow-up recomputation pass.
func (s *Store) applyTimer(ctx context.Context, action, id string, want timer.Status, fn func(timer.Timer, time.Time) timer.Timer) (timer.Timer, bool) {
	ctx = logging.WithAction(logging.WithTimerID(ctx, id), action)

	s.mu.Lock()
	now := s.clock.Now()
	s.syncLocked(ctx, now)
	i := s.indexLocked(id)
	if i < 0 || s.timers[i].Status != want {
		s.mu.Unlock()
		s.logger.Debug().Ctx(ctx).Msg("action skipped")
		return timer.Timer{}, false
	}

	s.timers[i] = fn(s.timers[i], now)
	result := s.timers[i]
	if result.Status != timer.StatusCompleted {
		s.clearAlertLocked(id)
	}
	s.passLocked(now)
	s.syncLoopLocked()
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.logger.Debug().Ctx(ctx).Msg("action applied")
	s.save(ctx, snap)
	return result, true
}

func (s *Store) applyAll(ctx context.Context, action string, fn func(now time.Time) int) int {
	ctx = logging.WithAction(ctx, action)

	s.mu.Lock()
	now := s.clock.Now()
	s.syncLocked(ctx, now)
	n := fn(now)
	s.passLocked(now)
	s.syncLoopLocked()
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.logger.Debug().Ctx(ctx).Int("count", n).Msg("action applied")
	s.save(ctx, snap)
	return n
}

// passLocked recomputes every timer with the same now and starts alerts for
// completed timers that are not yet tracked. It reports whether anything
// changed.
func (s *Store) passLocked(now time.Time) bool {
	changed := false
	for i, before := range s.timers {
		after := timer.Recompute(before, now)
		if after.Remaining != before.Remaining || after.Status != before.Status {
			changed = true
		}
		s.timers[i] = after

		if after.Status != timer.StatusCompleted {
			continue
		}
		if _, tracked := s.completed[after.ID]; tracked {
			continue
		}
		s.completed[after.ID] = struct{}{}
		s.alerts.Start(after.ID, after.Name)
		s.bus.PublishTimerCompleted(eventbus.TimerCompletedPayload{Timer: after})
		s.logger.Info().Str("timer_id", after.ID).Str("name", after.Name).Msg("timer completed")
		changed = true
	}
	return changed
}

func (s *Store) clearAlertLocked(id string) {
	if _, ok := s.completed[id]; !ok {
		return
	}
	delete(s.completed, id)
	s.alerts.Stop(id)
}

// syncLoopLocked starts the loop when a timer is active and stops it when
// none is. Both directions are no-ops when already in the target state.
func (s *Store) syncLoopLocked() {
	if timer.HasActive(s.timers) {
		s.startLoopLocked()
	} else {
		s.stopLoopLocked()
	}
}

func (s *Store) startLoopLocked() {
	if s.loopCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.loopCancel = cancel
	s.loopDone = done

	s.logger.Debug().Dur("interval", s.interval).Msg("recomputation loop started")
	go s.loop(ctx, done)
}

// stopLoopLocked cancels the loop without waiting for it; the loop goroutine
// may itself be blocked on s.mu.
func (s *Store) stopLoopLocked() {
	if s.loopCancel == nil {
		return
	}
	s.loopCancel()
	s.loopCancel = nil
	s.loopDone = nil
	s.logger.Debug().Msg("recomputation loop stopped")
}

func (s *Store) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Store) tick(ctx context.Context) {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()
	changed := s.syncLocked(ctx, now)
	changed = s.passLocked(now) || changed
	s.syncLoopLocked()
	if !changed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked(now)
	s.mu.Unlock()

	s.save(context.Background(), snap)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.timers, func(t timer.Timer) bool { return t.ID == id })
}

type snapshot struct {
	seq    uint64
	now    time.Time
	timers []timer.Timer
	paused bool
}

// snapshotLocked captures the collection for save. Every snapshot must be
// passed to save.
func (s *Store) snapshotLocked(now time.Time) snapshot {
	s.seq++
	if s.persist != nil {
		s.pending++
	}
	return snapshot{
		seq:    s.seq,
		now:    now,
		timers: slices.Clone(s.timers),
		paused: s.globallyPaused,
	}
}

// save writes snap unless a newer snapshot has already been written. Failures
// are logged and never reach the caller.
func (s *Store) save(ctx context.Context, snap snapshot) {
	if s.persist == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	written := false
	rec := NewRecord(snap.timers, snap.now)
	rec.Writer = s.writer
	rec.Revision = snap.seq
	defer func() {
		s.mu.Lock()
		s.pending--
		if written {
			s.observed = recordKey(rec, true)
		}
		s.mu.Unlock()
	}()

	if snap.seq <= s.savedSeq {
		return
	}
	s.savedSeq = snap.seq

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := s.persist.SaveRecord(ctx, rec); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to persist timers")
	} else {
		written = true
	}
	if err := s.persist.SaveGlobalPause(ctx, snap.paused); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to persist global pause")
	}
}
