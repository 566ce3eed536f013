package ticktock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/ticktock/internal/core/timer"
)

var (
	ErrNoMatch   = errors.New("no timer matches")
	ErrAmbiguous = errors.New("more than one timer matches")
)

// Find resolves ref to a single timer. ref is tried as an exact id, then as
// a case-insensitive name, then as an id prefix.
func (s *Store) Find(ref string) (timer.Timer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return timer.Timer{}, fmt.Errorf("find timer: %w", ErrNoMatch)
	}

	timers := s.Timers()
	for _, t := range timers {
		if t.ID == ref {
			return t, nil
		}
	}

	if t, err := unique(timers, ref, func(t timer.Timer) bool { return strings.EqualFold(t.Name, ref) }); !errors.Is(err, ErrNoMatch) {
		return t, err
	}
	return unique(timers, ref, func(t timer.Timer) bool { return strings.HasPrefix(t.ID, ref) })
}

func unique(timers []timer.Timer, ref string, match func(timer.Timer) bool) (timer.Timer, error) {
	var found []timer.Timer
	for _, t := range timers {
		if match(t) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return timer.Timer{}, fmt.Errorf("find timer %q: %w", ref, ErrNoMatch)
	case 1:
		return found[0], nil
	default:
		return timer.Timer{}, fmt.Errorf("find timer %q: %w (%d found)", ref, ErrAmbiguous, len(found))
	}
}
