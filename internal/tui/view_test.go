package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/pkg/tuitest"
)

func TestView_EmptyState(t *testing.T) {
	h := newHarness(t)
	h.send(t, tuitest.WindowSize(80, 24))

	out := tuitest.StripANSI(h.model.render())
	assert.Contains(t, out, "ticktock")
	assert.Contains(t, out, "No timers yet")
	assert.Contains(t, out, "ctrl+n")
}

func TestView_RendersCards(t *testing.T) {
	h := newHarness(t)
	h.send(t, tuitest.WindowSize(100, 40))
	h.add(t, "Tea", 180)
	h.add(t, "Eggs", 420)
	h.clock.Advance(30 * time.Second)
	h.store.Recompute(t.Context())

	out := tuitest.StripANSI(h.model.render())
	assert.Contains(t, out, "Tea")
	assert.Contains(t, out, "2:30 / 3:00")
	assert.Contains(t, out, "Eggs")
	assert.Contains(t, out, "6:30 / 7:00")
	assert.Contains(t, out, "running")
}

func TestView_GlobalPauseBanner(t *testing.T) {
	h := newHarness(t)
	h.add(t, "Tea", 60)
	h.send(t, tuitest.KeyCtrl('p'))

	out := tuitest.StripANSI(h.model.render())
	assert.Contains(t, out, "All timers paused")
	assert.Contains(t, out, "paused")
}

func TestView_Overlays(t *testing.T) {
	h := newHarness(t)
	h.send(t, tuitest.WindowSize(100, 40))

	h.send(t, tuitest.KeyCtrl('n'))
	assert.Contains(t, tuitest.StripANSI(h.model.render()), "New timer")

	h.send(t, tuitest.KeyEscape())
	h.send(t, tuitest.KeyPress('?'))
	require.Equal(t, stateShowingHelp, h.model.state)
	out := tuitest.StripANSI(h.model.render())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "reset all")
}

func TestView_AltScreenAndFocus(t *testing.T) {
	h := newHarness(t)
	v := h.model.View()
	assert.True(t, v.AltScreen)
	assert.True(t, v.ReportFocus)
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name string
		tm   timer.Timer
		want float64
	}{
		{"fresh", timer.Timer{Duration: 100, Remaining: 100}, 0},
		{"half", timer.Timer{Duration: 100, Remaining: 50}, 0.5},
		{"done", timer.Timer{Duration: 100, Remaining: 0}, 1},
		{"zero duration", timer.Timer{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, progressFraction(tt.tm), 0.0001)
		})
	}
}
