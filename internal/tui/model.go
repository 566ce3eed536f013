package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/ticktock/internal/core/config"
	"github.com/colonyops/ticktock/internal/core/eventbus"
	"github.com/colonyops/ticktock/internal/core/logging"
	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/core/timer"
	"github.com/colonyops/ticktock/internal/ticktock"
)

const defaultRedrawInterval = 100 * time.Millisecond

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateCreating
	stateShowingHelp
)

// Deps are the services the TUI drives.
type Deps struct {
	Config *config.Config
	Store  *ticktock.Store
	Bus    *eventbus.EventBus // optional
	Logger zerolog.Logger
}

// Model is the Bubble Tea model for the timer screen.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	store  *ticktock.Store
	bus    *eventbus.EventBus
	logger zerolog.Logger
	keys   keyMap

	state  UIState
	cursor int
	width  int
	height int
	redraw time.Duration

	form          *createForm
	toasts        *ToastController
	notifications <-chan notify.Notification
}

type tickMsg time.Time

// New builds the model. Subscriptions are registered immediately so no
// notification published after New is missed.
func New(ctx context.Context, deps Deps) Model {
	redraw := defaultRedrawInterval
	if deps.Config != nil && deps.Config.TickInterval > 0 {
		redraw = deps.Config.TickInterval
	}

	return Model{
		ctx:           ctx,
		cfg:           deps.Config,
		store:         deps.Store,
		bus:           deps.Bus,
		logger:        logging.From(deps.Logger, "tui"),
		keys:          newKeyMap(),
		redraw:        redraw,
		toasts:        NewToastController(),
		notifications: subscribeNotifications(deps.Bus),
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.redraw, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the redraw ticker and the notification listener.
func (m Model) Init() tea.Cmd {
	m.bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	return tea.Batch(m.scheduleTick(), waitForNotification(m.notifications))
}

// Update handles a message and returns the next model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.store.Sync(m.ctx)
		m.clampCursor()
		return m, m.scheduleTick()

	case toastTickMsg:
		return m, m.toasts.handleTick()

	case notificationMsg:
		m.toasts.Push(msg.notification)
		return m, tea.Batch(m.toasts.ensureTick(), waitForNotification(m.notifications))

	case tea.FocusMsg:
		m.store.Recompute(m.ctx)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateCreating {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateCreating:
		return m.handleFormKey(msg)
	case stateShowingHelp:
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.state = stateNormal
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case msg.String() == "esc":
		m.toasts.DismissAll()
	case key.Matches(msg, m.keys.Help):
		m.state = stateShowingHelp
	case key.Matches(msg, m.keys.New):
		m.openForm()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PauseAll):
		if m.anyWithStatus(timer.StatusRunning) {
			m.store.PauseAll(m.ctx)
		}
	case key.Matches(msg, m.keys.ResumeAll):
		if m.anyWithStatus(timer.StatusPaused) {
			m.store.ResumeAll(m.ctx)
		}
	case key.Matches(msg, m.keys.ResetAll):
		if len(m.store.Timers()) > 0 {
			m.store.ResetAll(m.ctx)
		}
	default:
		m.handleTimerKey(msg)
	}
	return m, nil
}

// handleTimerKey applies a per-timer action to the selected timer. Keys that
// do not apply to its status are ignored.
func (m *Model) handleTimerKey(msg tea.KeyMsg) {
	t, ok := m.selected()
	if !ok {
		return
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		switch t.Status {
		case timer.StatusRunning:
			m.store.PauseOne(m.ctx, t.ID)
		case timer.StatusPaused:
			m.store.ResumeOne(m.ctx, t.ID)
		}
	case key.Matches(msg, m.keys.Restart):
		m.store.Restart(m.ctx, t.ID)
	case key.Matches(msg, m.keys.Again):
		switch t.Status {
		case timer.StatusCompleted:
			m.store.Repeat(m.ctx, t.ID)
		case timer.StatusDismissed:
			m.store.Revive(m.ctx, t.ID)
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.store.Dismiss(m.ctx, t.ID)
	case key.Matches(msg, m.keys.Remove):
		m.store.Remove(m.ctx, t.ID)
		m.clampCursor()
	}
}

func (m *Model) openForm() {
	defaults := 0
	if m.cfg != nil {
		defaults = m.cfg.Defaults.Seconds()
	}
	m.form = newCreateForm(defaults)
	m.state = stateCreating
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.state = stateNormal
		return m, nil
	case "ctrl+c":
		return m.quit()
	case "enter":
		sub, ok := m.form.Submit()
		if !ok {
			return m, nil
		}
		if _, err := m.store.Add(m.ctx, sub.Name, sub.Seconds); err != nil {
			m.logger.Warn().Err(err).Msg("add timer")
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.state = stateNormal
		m.cursor = len(m.store.Timers()) - 1
		return m, nil
	}
	return m, m.form.Update(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	return m, tea.Quit
}

func (m Model) selected() (timer.Timer, bool) {
	timers := m.store.Timers()
	if m.cursor < 0 || m.cursor >= len(timers) {
		return timer.Timer{}, false
	}
	return timers[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.store.Timers())
	m.cursor = max(min(m.cursor, n-1), 0)
}

func (m Model) anyWithStatus(status timer.Status) bool {
	for _, t := range m.store.Timers() {
		if t.Status == status {
			return true
		}
	}
	return false
}
