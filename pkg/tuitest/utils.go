// Package tuitest builds bubbletea messages and normalizes rendered frames
// for model tests.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI drops escape sequences and trailing blanks from every line of a
// rendered frame.
func StripANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// KeyPress is a press of a single printable rune.
func KeyPress(r rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)})
}

// KeyCtrl is ctrl held with r, e.g. KeyCtrl('n') for "ctrl+n".
func KeyCtrl(r rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
}

// Type returns one key press per rune of s, in order.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

func special(code rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

func KeyDown() tea.Msg   { return special(tea.KeyDown) }
func KeyUp() tea.Msg     { return special(tea.KeyUp) }
func KeyEnter() tea.Msg  { return special(tea.KeyEnter) }
func KeyEscape() tea.Msg { return special(tea.KeyEscape) }
func KeyTab() tea.Msg    { return special(tea.KeyTab) }

// WindowSize is a terminal resize to w by h cells.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
