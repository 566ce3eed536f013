package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/ticktock/internal/core/styles"
	"github.com/colonyops/ticktock/internal/core/timer"
)

const formInputWidth = 32

// createForm collects the name and duration of a new timer.
type createForm struct {
	name     textinput.Model
	duration textinput.Model
	focus    int
	err      string
}

// formSubmission is a validated form result.
type formSubmission struct {
	Name    string
	Seconds int
}

func newTextInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Focused.Text = lipgloss.NewStyle().Foreground(styles.ColorForeground)
	inputStyles.Cursor.Color = styles.ColorPrimary
	input.SetWidth(formInputWidth)
	input.SetStyles(inputStyles)
	return input
}

func newCreateForm(defaultSeconds int) *createForm {
	name := newTextInput("Tea")
	name.Focus()

	duration := newTextInput("3:00, 90, 1m30s")
	if defaultSeconds > 0 {
		duration.SetValue(timer.FormatRemaining(defaultSeconds))
	}

	return &createForm{name: name, duration: duration}
}

func (f *createForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.name.Focus()
		f.duration.Blur()
		return
	}
	f.duration.Focus()
	f.name.Blur()
}

// Submit validates the inputs. On failure the error is kept for display.
func (f *createForm) Submit() (formSubmission, bool) {
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		f.err = "name is required"
		f.setFocus(0)
		return formSubmission{}, false
	}

	secs, err := timer.ParseDuration(f.duration.Value())
	if err != nil {
		f.err = "duration must be positive, e.g. 3:00 or 90"
		f.setFocus(1)
		return formSubmission{}, false
	}

	f.err = ""
	return formSubmission{Name: name, Seconds: secs}, true
}

// Update routes keys to the focused input. tab and shift+tab move focus.
func (f *createForm) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % 2)
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus + 1) % 2)
			return nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.duration, cmd = f.duration.Update(msg)
	}
	return cmd
}

func (f *createForm) View() string {
	field := func(title string, input textinput.Model, focused bool) string {
		titleStyle, fieldStyle := styles.FormTitleBlurredStyle, styles.FormFieldStyle
		if focused {
			titleStyle, fieldStyle = styles.FormTitleStyle, styles.FormFieldFocusedStyle
		}
		return fieldStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), input.View()))
	}

	lines := []string{
		styles.ModalTitleStyle.Render("New timer"),
		"",
		field("Name", f.name, f.focus == 0),
		"",
		field("Duration", f.duration, f.focus == 1),
	}
	if f.err != "" {
		lines = append(lines, "", styles.FormErrorStyle.Render(f.err))
	}
	lines = append(lines, "", styles.FormHelpStyle.Render("tab switch • enter start • esc cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
