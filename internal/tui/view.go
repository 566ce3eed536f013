package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/ticktock/internal/core/styles"
	"github.com/colonyops/ticktock/internal/core/timer"
)

const progressWidth = 24

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.ReportFocus = true
	return v
}

// render composes the screen with any active overlays.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderMain(w)
	switch m.state {
	case stateCreating:
		content = overlayCentered(content, m.form.View(), w, h)
	case stateShowingHelp:
		content = overlayCentered(content, m.renderHelp(), w, h)
	}

	if m.toasts.HasToasts() {
		content = m.toasts.Overlay(content, w, h)
	}
	return content
}

func (m Model) renderMain(width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("ticktock"))
	b.WriteString("\n")
	b.WriteString(styles.DividerStyle.Render(strings.Repeat("─", max(width-1, 0))))
	b.WriteString("\n")

	if m.store.GloballyPaused() {
		b.WriteString(styles.BannerStyle.Render("All timers paused • ctrl+r to resume"))
		b.WriteString("\n\n")
	}

	timers := m.store.Timers()
	if len(timers) == 0 {
		b.WriteString(styles.HelpDescStyle.Render("No timers yet. Press ctrl+n to create one."))
		b.WriteString("\n")
	}

	alerting := make(map[string]bool)
	for _, id := range m.store.Alerting() {
		alerting[id] = true
	}

	for i, t := range timers {
		b.WriteString(renderCard(t, i == m.cursor, alerting[t.ID]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderBindings(m.keys.shortHelp()))
	return b.String()
}

func renderCard(t timer.Timer, selected, alerting bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}

	icon, statusStyle := statusDecor(t.Status)
	header := styles.CardNameStyle.Render(t.Name) + "  " + statusStyle.Render(icon+" "+string(t.Status))
	if alerting {
		header += " " + styles.IconBell
	}

	clock := styles.CardClockStyle.Render(timer.FormatRemaining(t.Remaining)) +
		styles.HelpDescStyle.Render(" / "+timer.FormatRemaining(t.Duration))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, clock, renderProgress(t)))
}

func statusDecor(status timer.Status) (string, lipgloss.Style) {
	switch status {
	case timer.StatusRunning:
		return styles.IconRunning, styles.StatusRunningStyle
	case timer.StatusPaused:
		return styles.IconPaused, styles.StatusPausedStyle
	case timer.StatusCompleted:
		return styles.IconCompleted, styles.StatusCompletedStyle
	default:
		return styles.IconDismissed, styles.StatusDismissedStyle
	}
}

// progressFraction is the share of the duration that has elapsed.
func progressFraction(t timer.Timer) float64 {
	if t.Duration <= 0 {
		return 1
	}
	frac := 1 - float64(t.Remaining)/float64(t.Duration)
	return min(max(frac, 0), 1)
}

func renderProgress(t timer.Timer) string {
	frac := progressFraction(t)
	filled := int(frac * progressWidth)

	bar := lipgloss.NewStyle().Foreground(styles.ProgressColor(frac)).Render(strings.Repeat("█", filled))
	rest := styles.DividerStyle.Render(strings.Repeat("░", progressWidth-filled))
	return bar + rest
}

func renderBindings(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpDescStyle.Render(" • "))
}

func (m Model) renderHelp() string {
	lines := []string{styles.ModalTitleStyle.Render("Keys"), ""}
	for i, group := range m.keys.helpGroups() {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("%s  %s",
				styles.HelpKeyStyle.Width(10).Render(h.Key),
				styles.HelpDescStyle.Render(h.Desc)))
		}
	}
	lines = append(lines, styles.ModalHelpStyle.Render("? or esc to close"))
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func overlayCentered(background, overlay string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	layer := lipgloss.NewLayer(overlay)
	oW := lipgloss.Width(overlay)
	oH := lipgloss.Height(overlay)
	layer.X(max((width-oW)/2, 0)).Y(max((height-oH)/2, 0)).Z(1)
	return lipgloss.NewCompositor(bgLayer, layer).Render()
}
