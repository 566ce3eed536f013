package ticktock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/ticktock/internal/core/kv"
	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/rs/zerolog"
)

// Storage keys. They match the keys written by earlier releases so existing
// state keeps loading.
const (
	StateKey       = "named-timers-state"
	GlobalPauseKey = "named-timers-global-pause"
)

// Record is the persisted snapshot of the collection.
type Record struct {
	Timers    []TimerRecord `json:"timers"`
	LastSaved int64         `json:"lastSaved"`          // epoch millis
	Writer    string        `json:"writer,omitempty"`   // store instance that saved it
	Revision  uint64        `json:"revision,omitempty"` // per-writer save counter
}

// TimerRecord is the stored form of a timer. Timestamps are epoch millis and
// absent timestamps are omitted.
type TimerRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Duration      int    `json:"duration"`
	RemainingTime int    `json:"remainingTime"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"createdAt"`
	FinishesAt    *int64 `json:"finishesAt,omitempty"`
	PausedAt      *int64 `json:"pausedAt,omitempty"`
}

func toRecord(t timer.Timer) TimerRecord {
	return TimerRecord{
		ID:            t.ID,
		Name:          t.Name,
		Duration:      t.Duration,
		RemainingTime: t.Remaining,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt.UnixMilli(),
		FinishesAt:    millisPtr(t.FinishesAt),
		PausedAt:      millisPtr(t.PausedAt),
	}
}

func fromRecord(r TimerRecord) timer.Timer {
	return timer.Timer{
		ID:         r.ID,
		Name:       r.Name,
		Duration:   r.Duration,
		Remaining:  r.RemainingTime,
		Status:     timer.Status(r.Status),
		CreatedAt:  time.UnixMilli(r.CreatedAt),
		FinishesAt: fromMillisPtr(r.FinishesAt),
		PausedAt:   fromMillisPtr(r.PausedAt),
	}
}

func millisPtr(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillisPtr(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms)
}

// NewRecord snapshots timers as of now.
func NewRecord(timers []timer.Timer, now time.Time) Record {
	rec := Record{
		Timers:    make([]TimerRecord, len(timers)),
		LastSaved: now.UnixMilli(),
	}
	for i, t := range timers {
		rec.Timers[i] = toRecord(t)
	}
	return rec
}

// Recover rebuilds the collection from rec as of now. Running timers lose the
// whole seconds elapsed since the record was saved and complete if that takes
// them to zero. Other timers come back verbatim. Entries with an unknown
// status, an empty id, or a repeated id are dropped.
func Recover(rec Record, now time.Time) []timer.Timer {
	elapsed := int(now.UnixMilli()-rec.LastSaved) / 1000
	if elapsed < 0 {
		elapsed = 0
	}

	seen := make(map[string]struct{}, len(rec.Timers))
	out := make([]timer.Timer, 0, len(rec.Timers))
	for _, r := range rec.Timers {
		t := fromRecord(r)
		if t.ID == "" || !t.Status.IsValid() {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}

		if t.Remaining < 0 {
			t.Remaining = 0
		}

		if t.Status == timer.StatusRunning && t.Remaining > 0 {
			t.Remaining = max(0, t.Remaining-elapsed)
			if t.Remaining == 0 {
				t.Status = timer.StatusCompleted
				t.FinishesAt = time.Time{}
			}
		}

		// Keep finishesAt present exactly when running.
		switch {
		case t.Status == timer.StatusRunning && t.FinishesAt.IsZero():
			t.FinishesAt = now.Add(time.Duration(t.Remaining) * time.Second)
		case t.Status != timer.StatusRunning:
			t.FinishesAt = time.Time{}
		}

		out = append(out, t)
	}
	return out
}

// Persister reads and writes the timer collection in a KV store.
type Persister struct {
	state  *kv.TypedKV[Record]
	paused *kv.TypedKV[bool]
	logger zerolog.Logger
}

// NewPersister creates a Persister over store.
func NewPersister(store kv.KV, logger zerolog.Logger) *Persister {
	return &Persister{
		state:  kv.Scoped[Record](store, ""),
		paused: kv.Scoped[bool](store, ""),
		logger: logging.From(logger, "persist"),
	}
}

// Save writes the collection with lastSaved set to now.
func (p *Persister) Save(ctx context.Context, timers []timer.Timer, now time.Time) error {
	return p.SaveRecord(ctx, NewRecord(timers, now))
}

// SaveRecord writes rec as is.
func (p *Persister) SaveRecord(ctx context.Context, rec Record) error {
	if err := p.state.Set(ctx, StateKey, rec); err != nil {
		return fmt.Errorf("save timers: %w", err)
	}
	return nil
}

// LoadRecord reads the stored record. A missing or malformed record reports
// false; malformed records are logged.
func (p *Persister) LoadRecord(ctx context.Context) (Record, bool) {
	rec, ok, err := p.state.Lookup(ctx, StateKey)
	if err != nil {
		p.logger.Warn().Err(err).Msg("discarding unreadable timer state")
	}
	return rec, ok
}

// Load reads the stored collection and applies Recover as of now. It never
// fails; unreadable state is treated as an empty collection.
func (p *Persister) Load(ctx context.Context, now time.Time) []timer.Timer {
	rec, ok := p.LoadRecord(ctx)
	if !ok {
		return []timer.Timer{}
	}
	return Recover(rec, now)
}

// SaveGlobalPause writes the global pause flag.
func (p *Persister) SaveGlobalPause(ctx context.Context, paused bool) error {
	if err := p.paused.Set(ctx, GlobalPauseKey, paused); err != nil {
		return fmt.Errorf("save global pause: %w", err)
	}
	return nil
}

// LoadGlobalPause reads the global pause flag, defaulting to false.
func (p *Persister) LoadGlobalPause(ctx context.Context) bool {
	paused, _, err := p.paused.Lookup(ctx, GlobalPauseKey)
	if err != nil {
		p.logger.Warn().Err(err).Msg("discarding unreadable global pause flag")
	}
	return paused
}

// Clear removes all stored timer state.
func (p *Persister) Clear(ctx context.Context) error {
	return errors.Join(
		p.state.Delete(ctx, StateKey),
		p.paused.Delete(ctx, GlobalPauseKey),
	)
}
