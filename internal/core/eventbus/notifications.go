package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/rs/zerolog"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeTimerCompleted(func(p TimerCompletedPayload) {
		r.notifyf(notify.LevelInfo, p.Timer.ID, "timer %q finished", p.Timer.Name)
	})

	r.bus.SubscribeTimerRemoved(func(p TimerRemovedPayload) {
		r.notifyf(notify.LevelInfo, p.TimerID, "timer %q removed", p.Name)
	})

	r.bus.SubscribeTimersReset(func(p TimersResetPayload) {
		if p.Count == 0 {
			return
		}
		r.notifyf(notify.LevelInfo, "", "reset %d timers", p.Count)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, timerID, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		TimerID: timerID,
		Message: fmt.Sprintf(format, args...),
	})
}

// RecordNotifications persists every published notification to store.
// Save failures are logged and otherwise ignored.
func RecordNotifications(bus *EventBus, store notify.Store, logger zerolog.Logger) {
	bus.SubscribeNotificationPublished(func(p NotificationPublishedPayload) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		n := notify.Notification{
			Level:   p.Level,
			TimerID: p.TimerID,
			Message: p.Message,
		}
		if _, err := store.Save(ctx, n); err != nil {
			logger.Warn().Err(err).Str("timer_id", p.TimerID).Msg("failed to save notification")
		}
	})
}
