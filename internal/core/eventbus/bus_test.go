package eventbus_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/eventbus/testbus"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_DeliversTypedPayload(t *testing.T) {
	tb := testbus.New(t)

	got := make(chan eventbus.TimerCompletedPayload, 1)
	tb.SubscribeTimerCompleted(func(p eventbus.TimerCompletedPayload) { got <- p })

	tb.PublishTimerCompleted(eventbus.TimerCompletedPayload{Timer: timer.Timer{ID: "abc", Name: "Tea"}})

	select {
	case p := <-got:
		assert.Equal(t, "abc", p.Timer.ID)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not called")
	}
}

func TestEventBus_PanickingSubscriberDoesNotStopDispatch(t *testing.T) {
	tb := testbus.New(t)

	var panics atomic.Int32
	tb.OnPanic(func(eventbus.Event, any, any) { panics.Add(1) })
	tb.SubscribeTimerAdded(func(eventbus.TimerAddedPayload) { panic("boom") })

	tb.PublishTimerAdded(eventbus.TimerAddedPayload{})
	tb.PublishTimersReset(eventbus.TimersResetPayload{Count: 1})

	tb.AssertPublished(t, eventbus.EventTimersReset)
	assert.Equal(t, int32(1), panics.Load())
}

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped atomic.Int32
	bus.OnDrop(func(eventbus.Event, any) { dropped.Add(1) })

	bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	assert.Equal(t, int32(1), dropped.Load())
}

func TestEventBus_NilBusPublishIsNoop(t *testing.T) {
	var bus *eventbus.EventBus
	require.NotPanics(t, func() {
		bus.PublishTimerAdded(eventbus.TimerAddedPayload{})
	})
}

func TestEventBus_StartReturnsOnCancel(t *testing.T) {
	bus := eventbus.New(4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		bus.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestEventBus_StartDrainsOnCancel(t *testing.T) {
	bus := eventbus.New(8)

	var got []string
	bus.SubscribeTimerRemoved(func(p eventbus.TimerRemovedPayload) {
		got = append(got, p.Name)
	})

	bus.PublishTimerRemoved(eventbus.TimerRemovedPayload{Name: "a"})
	bus.PublishTimerRemoved(eventbus.TimerRemovedPayload{Name: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Start(ctx)

	assert.Equal(t, []string{"a", "b"}, got)
}
