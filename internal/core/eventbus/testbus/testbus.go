// Package testbus runs a real event bus for the duration of a test and keeps
// every event it dispatches, so tests can assert on what a store announced.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/ticktock/internal/core/eventbus"
)

// settle is how long assertions wait for the dispatch goroutine.
const settle = 500 * time.Millisecond

// RecordedEvent is one dispatched event.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus is a started *eventbus.EventBus that records dispatched events.
type Bus struct {
	*eventbus.EventBus

	mu     sync.Mutex
	events []RecordedEvent
}

// New starts a bus that is stopped at test cleanup.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{EventBus: eventbus.New(64)}
	tb.SubscribeAll(func(event eventbus.Event, payload any) {
		tb.mu.Lock()
		tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
		tb.mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go tb.Start(ctx)
	t.Cleanup(cancel)

	return tb
}

// Events returns the events recorded so far, oldest first.
func (tb *Bus) Events() []RecordedEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]RecordedEvent(nil), tb.events...)
}

// Count reports how many events named event were recorded.
func (tb *Bus) Count(event eventbus.Event) int {
	n := 0
	for _, e := range tb.Events() {
		if e.Event == event {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (tb *Bus) Reset() {
	tb.mu.Lock()
	tb.events = nil
	tb.mu.Unlock()
}

// WaitFor polls until event is recorded or timeout elapses.
func (tb *Bus) WaitFor(event eventbus.Event, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if tb.Count(event) > 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// AssertPublished fails t unless event is dispatched shortly.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) bool {
	t.Helper()
	return assert.True(t, tb.WaitFor(event, settle), "event %q was not published", event)
}

// AssertNotPublished waits for wait and fails t if event was dispatched.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event, wait time.Duration) bool {
	t.Helper()
	time.Sleep(wait)
	return assert.Zero(t, tb.Count(event), "event %q was published", event)
}

// Payloads returns the recorded payloads of type T, oldest first.
func Payloads[T any](tb *Bus) []T {
	var out []T
	for _, e := range tb.Events() {
		if p, ok := e.Payload.(T); ok {
			out = append(out, p)
		}
	}
	return out
}
