package ticktock

import "time"

// Clock supplies the current time. Every transition in a single pass reads
// it once so the whole collection agrees on "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
