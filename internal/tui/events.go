package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/notify"
)

const notificationBuffer = 32

type notificationMsg struct {
	notification notify.Notification
}

// subscribeNotifications forwards published notifications into a channel the
// model can wait on. Notifications are dropped when the buffer is full. A nil
// bus yields a nil channel.
func subscribeNotifications(bus *eventbus.EventBus) <-chan notify.Notification {
	if bus == nil {
		return nil
	}

	ch := make(chan notify.Notification, notificationBuffer)
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		n := notify.Notification{Level: p.Level, TimerID: p.TimerID, Message: p.Message}
		select {
		case ch <- n:
		default:
		}
	})
	return ch
}

func waitForNotification(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{notification: n}
	}
}
