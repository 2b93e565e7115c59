package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Submit      key.Binding
	NextMode    key.Binding
	PrevMode    key.Binding
	Back        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
	FindSimilar key.Binding
	ToggleDiff  key.Binding
	CopySummary key.Binding
	Export      key.Binding
	PickFile    key.Binding
	FocusInput  key.Binding
	Paste       key.Binding
	NewAnalysis key.Binding
	CycleTheme  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next input mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous input mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		FindSimilar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "find similar articles"),
		),
		ToggleDiff: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle paragraph reason"),
		),
		CopySummary: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy summary"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "copy report JSON"),
		),
		PickFile: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "choose file"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "edit input"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		NewAnalysis: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new analysis"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
	}
}
