package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/ticktock/internal/core/notify"
	"github.com/colonyops/ticktock/internal/core/styles"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 4
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 44
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController manages the lifecycle of active toast notifications.
// It handles push, eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts  []toast
	ticking bool
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds a notification to the toast stack. If the stack exceeds
// defaultMaxToasts, the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{
		notification: n,
		remaining:    defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

func (c *ToastController) Toasts() []toast {
	return c.toasts
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ensureTick starts the TTL countdown unless it is already running.
func (c *ToastController) ensureTick() tea.Cmd {
	if c.ticking || !c.HasToasts() {
		return nil
	}
	c.ticking = true
	return scheduleToastTick()
}

// handleTick advances TTLs and reschedules while toasts remain.
func (c *ToastController) handleTick() tea.Cmd {
	c.Tick(toastTickInterval)
	if c.HasToasts() {
		return scheduleToastTick()
	}
	c.ticking = false
	return nil
}

// View renders the toast stack with the oldest at the top.
func (c *ToastController) View() string {
	if len(c.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	style := styles.ToastStyle
	icon := styles.IconBell
	switch t.notification.Level {
	case notify.LevelError:
		style = style.BorderForeground(styles.ColorError)
		icon = "✘"
	case notify.LevelWarning:
		style = style.BorderForeground(styles.ColorWarning)
		icon = "!"
	}

	return style.Width(toastWidth).Render(icon + " " + t.notification.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (c *ToastController) Overlay(background string, width, height int) string {
	content := c.View()
	if content == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(content)

	rightX := max(width-lipgloss.Width(content)-1, 0)
	bottomY := max(height-lipgloss.Height(content), 0)
	toastLayer.X(rightX).Y(bottomY).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
