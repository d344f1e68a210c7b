package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/ui/style"
)

const (
	selectLabel = "Select file or folder"
	startLabel  = "Start monitoring"
	stopLabel   = "Stop monitoring"
)

// View renders the window, the picker or the front dialog.
func (m *Model) View() string {
	switch {
	case len(m.dialogs) > 0:
		return m.place(m.dialogView())
	case m.picker != nil:
		return m.pickerView()
	default:
		return m.windowView()
	}
}

func (m *Model) windowView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("nudge") + "\n\n")
	s.WriteString(m.button(ControlSelect, selectLabel) + "\n")
	s.WriteString(labelStyle.Render(m.pathLabel()) + "\n\n")
	s.WriteString(m.button(ControlToggle, m.toggleLabel()) + "\n")
	s.WriteString(m.statusLabel() + "\n\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

func (m *Model) button(c Control, label string) string {
	if c == m.focus {
		return lipgloss.JoinHorizontal(lipgloss.Center,
			focusedButtonStyle.Render(label),
			" "+style.Pointer,
		)
	}
	return buttonStyle.Render(label)
}

func (m *Model) pathLabel() string {
	if m.target == "" {
		return "Path: none selected"
	}
	return "Path: " + m.target
}

func (m *Model) toggleLabel() string {
	if m.monitor.State() == domain.StateActive {
		return stopLabel
	}
	return startLabel
}

func (m *Model) statusLabel() string {
	if m.monitor.State() == domain.StateActive {
		return activeStatusStyle.Render(fmt.Sprintf("%s Status: monitoring %s", style.Dot, m.monitor.Root()))
	}
	return labelStyle.Render(style.Circle + " Status: idle")
}

func (m *Model) dialogView() string {
	d := m.dialogs[0]

	boxStyle, headStyle, icon := dialogStyle, dialogTitleStyle, style.Bell
	if d.kind == dialogError {
		boxStyle, headStyle, icon = errorDialogStyle, errorTitleStyle, style.Cross
	}

	lines := []string{
		headStyle.Render(icon + " " + d.title),
		"",
		d.body,
	}
	if pending := len(m.dialogs) - 1; pending > 0 {
		lines = append(lines, "", labelStyle.Render(fmt.Sprintf("%d more", pending)))
	}

	box := boxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, box, m.help.View(dialogKeys{m.keys}))
}

func (m *Model) pickerView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.picker.title()) + "\n")
	s.WriteString(labelStyle.Render(m.picker.fp.CurrentDirectory) + "\n\n")
	s.WriteString(m.picker.View() + "\n")
	s.WriteString(m.help.View(pickerKeys{keyMap: m.keys, stage: m.picker.stage}))

	return s.String()
}

// place centers content in the window once its size is known.
func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
