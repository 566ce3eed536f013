package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers published events to subscribers on a single dispatch
// goroutine. Publishing never blocks; events are dropped when the buffer is full.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
	all  []func(Event, any)
}

// New creates a bus with the given buffer size. Call Start to begin dispatch.
func New(size int) *EventBus {
	if size <= 0 {
		size = 1
	}
	return &EventBus{
		ch:   make(chan envelope, size),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled, then delivers whatever is
// still buffered before returning. Events published by handlers during that
// final drain are delivered too.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			bus.drain()
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) drain() {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		default:
			return
		}
	}
}

// SubscribeAll registers fn for every event regardless of topic.
func (bus *EventBus) SubscribeAll(fn func(Event, any)) {
	bus.mu.Lock()
	bus.all = append(bus.all, fn)
	bus.mu.Unlock()
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	handlers := make([]func(any), len(bus.subs[env.event]))
	copy(handlers, bus.subs[env.event])
	all := make([]func(Event, any), len(bus.all))
	copy(all, bus.all)
	bus.mu.RUnlock()

	for _, fn := range handlers {
		bus.call(env, func() { fn(env.payload) })
	}
	for _, fn := range all {
		bus.call(env, func() { fn(env.event, env.payload) })
	}
}

func (bus *EventBus) call(env envelope, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			bus.reportPanic(env, r)
		}
	}()
	fn()
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}

func (bus *EventBus) PublishTimerAdded(p TimerAddedPayload) {
	bus.send(EventTimerAdded, p)
}

func (bus *EventBus) SubscribeTimerAdded(fn func(TimerAddedPayload)) {
	bus.subscribe(EventTimerAdded, func(p any) { fn(p.(TimerAddedPayload)) })
}

func (bus *EventBus) PublishTimerCompleted(p TimerCompletedPayload) {
	bus.send(EventTimerCompleted, p)
}

func (bus *EventBus) SubscribeTimerCompleted(fn func(TimerCompletedPayload)) {
	bus.subscribe(EventTimerCompleted, func(p any) { fn(p.(TimerCompletedPayload)) })
}

func (bus *EventBus) PublishTimerDismissed(p TimerDismissedPayload) {
	bus.send(EventTimerDismissed, p)
}

func (bus *EventBus) SubscribeTimerDismissed(fn func(TimerDismissedPayload)) {
	bus.subscribe(EventTimerDismissed, func(p any) { fn(p.(TimerDismissedPayload)) })
}

func (bus *EventBus) PublishTimerRemoved(p TimerRemovedPayload) {
	bus.send(EventTimerRemoved, p)
}

func (bus *EventBus) SubscribeTimerRemoved(fn func(TimerRemovedPayload)) {
	bus.subscribe(EventTimerRemoved, func(p any) { fn(p.(TimerRemovedPayload)) })
}

func (bus *EventBus) PublishTimersReset(p TimersResetPayload) {
	bus.send(EventTimersReset, p)
}

func (bus *EventBus) SubscribeTimersReset(fn func(TimersResetPayload)) {
	bus.subscribe(EventTimersReset, func(p any) { fn(p.(TimersResetPayload)) })
}

func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}
