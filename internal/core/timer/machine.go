package timer

import "time"

// secondsUntil returns the whole seconds left until deadline, rounded up so the
// displayed second only drops once it has fully elapsed.
func secondsUntil(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Recompute derives the remaining time of a running timer from FinishesAt.
// Non-running timers are returned unchanged. A running timer that has reached
// zero becomes completed.
func Recompute(t Timer, now time.Time) Timer {
	if t.Status != StatusRunning {
		return t
	}

	remaining := secondsUntil(t.FinishesAt, now)
	if remaining == 0 {
		t.Remaining = 0
		t.Status = StatusCompleted
		t.FinishesAt = time.Time{}
		return t
	}

	t.Remaining = remaining
	return t
}

// RecomputeAll applies Recompute to every timer with the same now.
func RecomputeAll(timers []Timer, now time.Time) []Timer {
	out := make([]Timer, len(timers))
	for i, t := range timers {
		out[i] = Recompute(t, now)
	}
	return out
}

// Start builds a new running timer. Callers must reject invalid input with
// Validate first.
func Start(id, name string, durationSeconds int, now time.Time) Timer {
	return Timer{
		ID:         id,
		Name:       name,
		Duration:   durationSeconds,
		Remaining:  durationSeconds,
		Status:     StatusRunning,
		CreatedAt:  now,
		FinishesAt: now.Add(time.Duration(durationSeconds) * time.Second),
	}
}

// Pause freezes a running timer at its current remaining time. A timer that
// has already expired comes back completed, never paused.
func Pause(t Timer, now time.Time) Timer {
	if t.Status != StatusRunning {
		return t
	}

	t = Recompute(t, now)
	if t.Status != StatusRunning {
		return t
	}

	t.Status = StatusPaused
	t.PausedAt = now
	t.FinishesAt = time.Time{}
	return t
}

// Resume restarts a paused timer from its frozen remaining time.
func Resume(t Timer, now time.Time) Timer {
	if t.Status != StatusPaused {
		return t
	}

	t.Status = StatusRunning
	t.FinishesAt = now.Add(time.Duration(t.Remaining) * time.Second)
	t.PausedAt = time.Time{}
	return t
}

// Reset restarts a timer from its full duration regardless of status. Repeat,
// revive, and restart are all this transition.
func Reset(t Timer, now time.Time) Timer {
	t.Remaining = t.Duration
	t.Status = StatusRunning
	t.FinishesAt = now.Add(time.Duration(t.Duration) * time.Second)
	t.PausedAt = time.Time{}
	return t
}

// Dismiss marks a timer dismissed. It is valid from any status; the store
// decides which statuses may reach it.
func Dismiss(t Timer) Timer {
	t.Status = StatusDismissed
	t.FinishesAt = time.Time{}
	t.PausedAt = time.Time{}
	return t
}
