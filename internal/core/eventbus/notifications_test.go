package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/eventbus/testbus"
	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/data/db"
	"github.com/colonyops/ticktock/internal/data/stores"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestNotificationPayload(tb *testbus.Bus, t *testing.T) eventbus.NotificationPublishedPayload {
	t.Helper()
	tb.AssertPublished(t, eventbus.EventNotificationPublished)

	payloads := testbus.Payloads[eventbus.NotificationPublishedPayload](tb)
	require.NotEmpty(t, payloads)
	return payloads[len(payloads)-1]
}

func TestNotificationRouter_TimerCompleted(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimerCompleted(eventbus.TimerCompletedPayload{Timer: timer.Timer{ID: "t-1", Name: "Tea"}})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelInfo, p.Level)
	assert.Equal(t, "t-1", p.TimerID)
	assert.Contains(t, p.Message, "Tea")
}

func TestNotificationRouter_TimerRemoved(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimerRemoved(eventbus.TimerRemovedPayload{TimerID: "t-9", Name: "Pasta"})
	p := latestNotificationPayload(tb, t)

	assert.Equal(t, notify.LevelInfo, p.Level)
	assert.Contains(t, p.Message, "Pasta")
}

func TestNotificationRouter_TimersReset(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimersReset(eventbus.TimersResetPayload{Count: 3})
	p := latestNotificationPayload(tb, t)

	assert.Contains(t, p.Message, "3")
}

func TestNotificationRouter_EmptyReset_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimersReset(eventbus.TimersResetPayload{Count: 0})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}

func TestNotificationRouter_TimerAdded_doesNotPublish(t *testing.T) {
	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()

	tb.PublishTimerAdded(eventbus.TimerAddedPayload{Timer: timer.Timer{Name: "Tea"}})
	tb.AssertNotPublished(t, eventbus.EventNotificationPublished, 100*time.Millisecond)
}

func TestRecordNotifications_SavesToStore(t *testing.T) {
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store := stores.NewNotifyStore(database)

	tb := testbus.New(t)
	eventbus.NewNotificationRouter(tb.EventBus).Register()
	eventbus.RecordNotifications(tb.EventBus, store, zerolog.Nop())

	tb.PublishTimerCompleted(eventbus.TimerCompletedPayload{Timer: timer.Timer{ID: "t-1", Name: "Tea"}})

	require.Eventually(t, func() bool {
		n, err := store.Count(context.Background())
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)

	items, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t-1", items[0].TimerID)
	assert.Contains(t, items[0].Message, "Tea")
}
