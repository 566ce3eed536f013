// Package notify models the notification history: one entry per timer that
// finished, was removed, or was part of a bulk reset.
package notify

import (
	"context"
	"fmt"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ParseLevel accepts the lowercase level names.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LevelInfo, LevelWarning, LevelError:
		return l, nil
	}
	return "", fmt.Errorf("unknown notification level %q (want info, warning or error)", s)
}

// Notification is one history entry. TimerID is empty for entries that
// cover several timers.
type Notification struct {
	ID        int64     `json:"id"`
	Level     Level     `json:"level"`
	TimerID   string    `json:"timer_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows a history listing. Zero fields match everything.
type Filter struct {
	Level   Level
	TimerID string
	Limit   int
}

// Apply keeps the entries of items matching f, preserving order, and stops
// after f.Limit matches when it is positive.
func (f Filter) Apply(items []Notification) []Notification {
	out := make([]Notification, 0, len(items))
	for _, n := range items {
		if f.Level != "" && n.Level != f.Level {
			continue
		}
		if f.TimerID != "" && n.TimerID != f.TimerID {
			continue
		}
		out = append(out, n)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Store is durable notification history. List returns newest first.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
