package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger traces every published event at debug level and reports
// dropped events and subscriber panics.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		ev := logger.Debug().Str("event", string(event))
		if id := timerIDOf(payload); id != "" {
			ev = ev.Str("timer_id", id)
		}
		ev.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func timerIDOf(payload any) string {
	switch p := payload.(type) {
	case TimerAddedPayload:
		return p.Timer.ID
	case TimerCompletedPayload:
		return p.Timer.ID
	case TimerDismissedPayload:
		return p.Timer.ID
	case TimerRemovedPayload:
		return p.TimerID
	case NotificationPublishedPayload:
		return p.TimerID
	}
	return ""
}
