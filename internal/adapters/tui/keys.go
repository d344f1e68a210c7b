package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the key bindings of the main window, the dialog and the picker.
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Select   key.Binding
	Toggle   key.Binding
	Quit     key.Binding
	Dismiss  key.Binding
	Cancel   key.Binding
	Here     key.Binding
	Abort    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Select: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "select path"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "start/stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "ok"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Here: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "this folder"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap for the main window.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Select, k.Toggle, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dialogKeys is the help.KeyMap shown below a dialog.
type dialogKeys struct{ keyMap }

func (k dialogKeys) ShortHelp() []key.Binding { return []key.Binding{k.Dismiss} }

func (k dialogKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// pickerKeys is the help.KeyMap shown below the picker.
type pickerKeys struct {
	keyMap
	stage pickerStage
}

func (k pickerKeys) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("right", "left"), key.WithHelp("→/←", "open/back")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	}
	if k.stage == pickDirectory {
		bindings = append(bindings, k.Here)
	}
	return append(bindings, k.Cancel)
}

func (k pickerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
