// Package timer defines the named countdown timer and the pure transitions
// between its states. Every transition takes the caller's notion of "now" so a
// pass over many timers is consistent in time.
package timer

import (
	"errors"
	"strings"
	"time"
)

// Status represents the lifecycle state of a timer.
type Status string

const (
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusPaused, StatusCompleted, StatusDismissed:
		return true
	}
	return false
}

var (
	// ErrEmptyName is returned when a timer name is blank after trimming.
	ErrEmptyName = errors.New("timer name cannot be empty")
	// ErrInvalidDuration is returned when a timer duration is not positive.
	ErrInvalidDuration = errors.New("timer duration must be positive")
)

// Timer is a single named countdown.
//
// Duration and Remaining are whole seconds. Remaining is authoritative only
// when the timer is not running; while running, FinishesAt is the source of
// truth and Remaining is a cached value refreshed by Recompute.
type Timer struct {
	ID         string
	Name       string
	Duration   int
	Remaining  int
	Status     Status
	CreatedAt  time.Time
	FinishesAt time.Time // zero unless Status == StatusRunning
	PausedAt   time.Time // zero unless Status == StatusPaused
}

// IsActive reports whether the timer is running or paused.
func (t Timer) IsActive() bool {
	return t.Status == StatusRunning || t.Status == StatusPaused
}

// Validate checks a name and duration before a timer is created.
func Validate(name string, durationSeconds int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if durationSeconds <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// HasActive reports whether any timer in timers is running or paused.
func HasActive(timers []Timer) bool {
	for _, t := range timers {
		if t.IsActive() {
			return true
		}
	}
	return false
}

// CountByStatus returns how many timers are in status s.
func CountByStatus(timers []Timer, s Status) int {
	n := 0
	for _, t := range timers {
		if t.Status == s {
			n++
		}
	}
	return n
}
