package tui

import "charm.land/bubbles/v2/key"

// keyMap holds every binding the timer screen responds to. Bindings are
// matched with key.Matches and listed in the help overlay.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Toggle  key.Binding
	Restart key.Binding
	Again   key.Binding
	Dismiss key.Binding
	Remove  key.Binding

	PauseAll  key.Binding
	ResumeAll key.Binding
	ResetAll  key.Binding

	Help key.Binding
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous timer")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next timer")),
		New:     key.NewBinding(key.WithKeys("ctrl+n", "n"), key.WithHelp("ctrl+n", "new timer")),
		Toggle:  key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "pause / resume")),
		Restart: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restart paused timer")),
		Again:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "repeat / revive")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss finished timer")),
		Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove timer")),

		PauseAll:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pause all")),
		ResumeAll: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resume all")),
		ResetAll:  key.NewBinding(key.WithKeys("ctrl+backspace", "ctrl+h"), key.WithHelp("ctrl+⌫", "reset all")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpGroups returns the bindings shown in the help overlay, by section.
func (k keyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.New, k.Help, k.Quit},
		{k.Toggle, k.Restart, k.Again, k.Dismiss, k.Remove},
		{k.PauseAll, k.ResumeAll, k.ResetAll},
	}
}

// shortHelp is the one-line footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Again, k.Dismiss, k.Remove, k.Help, k.Quit}
}
