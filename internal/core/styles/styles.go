package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Global styles rebuilt by SetTheme.
var (
	TitleStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	CardStyle         lipgloss.Style
	CardSelectedStyle lipgloss.Style
	CardNameStyle     lipgloss.Style
	CardClockStyle    lipgloss.Style

	StatusRunningStyle   lipgloss.Style
	StatusPausedStyle    lipgloss.Style
	StatusCompletedStyle lipgloss.Style
	StatusDismissedStyle lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormTitleBlurredStyle lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	FormHelpStyle         lipgloss.Style

	ToastStyle  lipgloss.Style
	BannerStyle lipgloss.Style

	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	CardSelectedStyle = CardStyle.
		BorderForeground(ColorPrimary)
	CardNameStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	CardClockStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	StatusRunningStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusPausedStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	StatusCompletedStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StatusDismissedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormTitleBlurredStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Foreground(ColorForeground).
		Padding(0, 1)
	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorWarning).
		Bold(true).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
}

// ProgressColor returns the bar color for a timer that has used frac of its
// duration, shading from the primary color toward the error color.
func ProgressColor(frac float64) color.Color {
	return Blend(ColorPrimary, ColorError, frac)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme].palette())
}
