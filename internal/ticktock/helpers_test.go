package ticktock

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/colonyops/ticktock/internal/core/eventbus/testbus"
	"github.com/colonyops/ticktock/internal/data/stores"
	"github.com/colonyops/ticktock/internal/ticktock/clocktest"
	"github.com/rs/zerolog"
)

var epoch = time.UnixMilli(1_700_000_000_000)

type recordingAlerter struct {
	mu     sync.Mutex
	starts map[string]int
	stops  map[string]int
}

func newRecordingAlerter() *recordingAlerter {
	return &recordingAlerter{starts: map[string]int{}, stops: map[string]int{}}
}

func (a *recordingAlerter) Start(id, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.starts[id]++
}

func (a *recordingAlerter) Stop(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stops[id]++
}

func (a *recordingAlerter) StopAll() {}

func (a *recordingAlerter) started(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.starts[id]
}

func (a *recordingAlerter) stopped(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stops[id]
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("t%d", n.Add(1)) }
}

type fixture struct {
	store   *Store
	clock   *clocktest.Clock
	alerts  *recordingAlerter
	bus     *testbus.Bus
	kv      *stores.MemoryKV
	persist *Persister
}

// newFixture builds a store whose loop ticks too slowly to interfere, so
// tests drive passes explicitly through Recompute.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:  clocktest.New(epoch),
		alerts: newRecordingAlerter(),
		bus:    testbus.New(t),
		kv:     stores.NewMemoryKV(),
	}
	f.persist = NewPersister(f.kv, zerolog.Nop())
	f.store = f.newStore(t, time.Hour)
	return f
}

func (f *fixture) newStore(t *testing.T, tick time.Duration) *Store {
	t.Helper()
	s := NewStore(StoreOptions{
		Clock:        f.clock,
		TickInterval: tick,
		Alerter:      f.alerts,
		Bus:          f.bus.EventBus,
		Persister:    f.persist,
		Logger:       zerolog.Nop(),
		NewID:        sequentialIDs(),
	})
	t.Cleanup(s.Close)
	return s
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}
