package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSounder struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newCountingSounder() *countingSounder {
	return &countingSounder{calls: make(map[string]int)}
}

func (s *countingSounder) Sound(_ context.Context, t Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[t.ID]++
	return s.err
}

func (s *countingSounder) count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func TestManager_FirstSoundIsImmediate(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, time.Hour, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")

	assert.Eventually(t, func() bool { return s.count("a") == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.Active("a"))
}

func TestManager_Repeats(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, 10*time.Millisecond, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")

	assert.Eventually(t, func() bool { return s.count("a") >= 3 }, time.Second, 5*time.Millisecond)
}

func TestManager_StartTwiceKeepsOneAlert(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, time.Hour, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")
	m.Start("a", "Tea")

	assert.Eventually(t, func() bool { return s.count("a") == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, s.count("a"))
	assert.Equal(t, []string{"a"}, m.State())
}

func TestManager_Stop(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, 10*time.Millisecond, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")
	require.Eventually(t, func() bool { return s.count("a") >= 1 }, time.Second, 5*time.Millisecond)

	m.Stop("a")
	assert.False(t, m.Active("a"))

	// Allow an in-flight tick to land, then confirm the count is frozen.
	time.Sleep(30 * time.Millisecond)
	frozen := s.count("a")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, s.count("a"))

	// Stopping again is a no-op.
	m.Stop("a")
	m.Stop("never-started")
}

func TestManager_StopAll(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, time.Hour, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")
	m.Start("b", "Eggs")
	assert.Equal(t, []string{"a", "b"}, m.State())

	m.StopAll()
	assert.Empty(t, m.State())
}

func TestManager_SoundFailureKeepsRepeating(t *testing.T) {
	s := newCountingSounder()
	s.err = errors.New("no speaker")
	m := NewManager(s, 10*time.Millisecond, zerolog.Nop())
	t.Cleanup(m.Close)

	m.Start("a", "Tea")

	assert.Eventually(t, func() bool { return s.count("a") >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.Active("a"))
}

func TestManager_StartAfterCloseIsIgnored(t *testing.T) {
	s := newCountingSounder()
	m := NewManager(s, time.Hour, zerolog.Nop())
	m.Close()

	m.Start("a", "Tea")
	assert.False(t, m.Active("a"))
	assert.Equal(t, 0, s.count("a"))
}

func TestNewManager_DefaultInterval(t *testing.T) {
	m := NewManager(Nop{}, 0, zerolog.Nop())
	assert.Equal(t, DefaultInterval, m.interval)
}
