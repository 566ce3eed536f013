package eventbus

import "sync"

// hookList is a concurrency-safe list of observer callbacks. Callers take a
// snapshot before running so a hook may register further hooks.
type hookList[F any] struct {
	mu  sync.RWMutex
	fns []F
}

func (l *hookList[F]) add(fn F) {
	l.mu.Lock()
	l.fns = append(l.fns, fn)
	l.mu.Unlock()
}

func (l *hookList[F]) snapshot() []F {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]F(nil), l.fns...)
}

type hooks struct {
	publish hookList[func(Event, any)]
	drop    hookList[func(Event, any)]
	panics  hookList[func(Event, any, any)]
}

// OnPublish runs fn after an event is accepted into the buffer. It runs on
// the publishing goroutine, so fn must not block.
func (bus *EventBus) OnPublish(fn func(Event, any)) { bus.hooks.publish.add(fn) }

// OnDrop runs fn when a full buffer forces an event to be discarded.
func (bus *EventBus) OnDrop(fn func(Event, any)) { bus.hooks.drop.add(fn) }

// OnPanic runs fn with the recovered value when a subscriber panics. A panic
// inside fn itself is swallowed.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) { bus.hooks.panics.add(fn) }

// send enqueues without blocking. A nil bus discards the event.
func (bus *EventBus) send(event Event, payload any) {
	if bus == nil {
		return
	}

	list := &bus.hooks.publish
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
	default:
		list = &bus.hooks.drop
	}
	for _, fn := range list.snapshot() {
		fn(event, payload)
	}
}

func (bus *EventBus) reportPanic(env envelope, recovered any) {
	for _, fn := range bus.hooks.panics.snapshot() {
		func() {
			defer func() { _ = recover() }()
			fn(env.event, env.payload, recovered)
		}()
	}
}
