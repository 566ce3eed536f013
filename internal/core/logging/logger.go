// Package logging holds the zerolog helpers shared by ticktock components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger tagged cmp=name from the global logger.
func Component(name string) zerolog.Logger {
	return From(log.Logger, name)
}

// From derives a logger tagged cmp=name from base, keeping its hooks.
func From(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("cmp", name).Logger()
}
