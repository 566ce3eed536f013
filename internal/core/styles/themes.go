// Package styles holds the lipgloss styles shared by the TUI and the CLI
// printer, rebuilt whenever a theme is applied.
package styles

import (
	"image/color"
	"maps"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of semantic colors a theme provides. Running timers use
// Success, paused ones Warning and alerting ones Error.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is used when the config names no theme.
const DefaultTheme = "tokyo-night"

// swatch lists a theme in Palette field order.
type swatch [9]string

func (s swatch) palette() Palette {
	c := func(i int) color.Color { return lipgloss.Color(s[i]) }
	return Palette{
		Primary:    c(0),
		Secondary:  c(1),
		Foreground: c(2),
		Muted:      c(3),
		Background: c(4),
		Surface:    c(5),
		Success:    c(6),
		Warning:    c(7),
		Error:      c(8),
	}
}

var themes = map[string]swatch{
	"tokyo-night": {"#7aa2f7", "#7dcfff", "#c0caf5", "#565f89", "#1a1b26", "#3b4261", "#9ece6a", "#e0af68", "#f7768e"},
	"gruvbox":     {"#83a598", "#8ec07c", "#ebdbb2", "#665c54", "#282828", "#3c3836", "#b8bb26", "#fabd2f", "#fb4934"},
	"catppuccin":  {"#89b4fa", "#94e2d5", "#cdd6f4", "#6c7086", "#1e1e2e", "#313244", "#a6e3a1", "#f9e2af", "#f38ba8"},
	"nord":        {"#88c0d0", "#81a1c1", "#eceff4", "#616e88", "#2e3440", "#3b4252", "#a3be8c", "#ebcb8b", "#bf616a"},
	"solarized":   {"#268bd2", "#2aa198", "#93a1a1", "#586e75", "#002b36", "#073642", "#859900", "#b58900", "#dc322f"},
}

// ThemeNames lists the built-in themes alphabetically.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// GetPalette resolves a built-in theme by name.
func GetPalette(name string) (Palette, bool) {
	s, ok := themes[name]
	if !ok {
		return Palette{}, false
	}
	return s.palette(), true
}

// Blend mixes a toward b in Lab space. t is clamped to [0, 1]. Colors that
// cannot be converted fall back to a.
func Blend(a, b color.Color, t float64) color.Color {
	t = min(max(t, 0), 1)
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}

// Hex renders c as #rrggbb, or an empty string for nil.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}
