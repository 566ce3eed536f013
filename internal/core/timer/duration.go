package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration converts user input into whole seconds. Accepted forms are a
// bare number of seconds ("90"), minutes and seconds ("1:30"), hours, minutes
// and seconds ("1:02:03"), and Go durations ("3m", "1m30s").
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse duration: %w", ErrInvalidDuration)
	}

	var secs int
	switch {
	case strings.Contains(s, ":"):
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("parse duration %q: too many fields", s)
		}
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("parse duration %q: invalid field %q", s, p)
			}
			secs = secs*60 + n
		}
	default:
		if n, err := strconv.Atoi(s); err == nil {
			secs = n
			break
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", s, err)
		}
		secs = int(d / time.Second)
	}

	if secs <= 0 {
		return 0, fmt.Errorf("parse duration %q: %w", s, ErrInvalidDuration)
	}
	return secs, nil
}

// FromMinutesSeconds totals a minutes and seconds pair.
func FromMinutesSeconds(minutes, seconds int) int {
	return minutes*60 + seconds
}

// FormatRemaining renders seconds as m:ss, or h:mm:ss past an hour.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
