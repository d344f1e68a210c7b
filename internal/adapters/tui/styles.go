package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/nudge/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(style.White)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Slate)

	focusedButtonStyle = buttonStyle.
				BorderForeground(style.Accent).
				Foreground(style.Accent).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	activeStatusStyle = lipgloss.NewStyle().
				Foreground(style.Green).
				Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Accent)

	errorDialogStyle = dialogStyle.
				BorderForeground(style.Red)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(style.Accent)

	errorTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Red)

	pickerCursorStyle = lipgloss.NewStyle().
				Foreground(style.Accent)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	pickerDirectoryStyle = lipgloss.NewStyle().
				Foreground(style.Yellow)
)
