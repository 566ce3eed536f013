// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within ticktock.
package eventbus

import (
	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/core/timer"
)

// Event names a bus topic.
type Event string

const (
	// Keep list sorted A-Z
	EventNotificationPublished Event = "notification.published"
	EventTimerAdded            Event = "timer.added"
	EventTimerCompleted        Event = "timer.completed"
	EventTimerDismissed        Event = "timer.dismissed"
	EventTimerRemoved          Event = "timer.removed"
	EventTimersReset           Event = "timers.reset"
	EventTuiStarted            Event = "tui.started"
	EventTuiStopped            Event = "tui.stopped"
)

// TimerAddedPayload is emitted when a new timer starts.
type TimerAddedPayload struct {
	Timer timer.Timer
}

// TimerCompletedPayload is emitted once when a running timer reaches zero.
type TimerCompletedPayload struct {
	Timer timer.Timer
}

// TimerDismissedPayload is emitted when a completed timer is dismissed.
type TimerDismissedPayload struct {
	Timer timer.Timer
}

// TimerRemovedPayload is emitted when a timer is deleted from the collection.
type TimerRemovedPayload struct {
	TimerID string
	Name    string
}

// TimersResetPayload is emitted after every timer restarts from its full duration.
type TimersResetPayload struct {
	Count int
}

// NotificationPublishedPayload carries a user-facing notification.
type NotificationPublishedPayload struct {
	Level   notify.Level
	TimerID string
	Message string
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
