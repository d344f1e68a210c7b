// Package tui implements the nudge window: a target selector, a start/stop
// toggle, two labels and the modal dialogs raised for file changes.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
)

// Control identifies a focusable button of the main window.
type Control int

const (
	// ControlSelect is the "Select file or folder" button.
	ControlSelect Control = iota
	// ControlToggle is the "Start monitoring"/"Stop monitoring" button.
	ControlToggle

	controlCount
)

// Deps are the collaborators of the Model.
type Deps struct {
	Monitor ports.Monitor
	Mailbox *Mailbox
	Player  ports.SoundPlayer
	Logger  ports.Logger
}

// Model is the bubbletea model of the nudge window. It is owned by the
// bubbletea loop and is the only place that drives the Monitor.
type Model struct {
	ctx     context.Context
	monitor ports.Monitor
	mailbox *Mailbox
	player  ports.SoundPlayer
	logger  ports.Logger

	cue      *domain.SoundCue
	target   string
	startDir string

	focus   Control
	dialogs []dialog
	picker  *picker

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// NewModel creates an idle model without a target. The sound is disabled
// until WithSound is called.
func NewModel(ctx context.Context, deps Deps) *Model {
	return &Model{
		ctx:     ctx,
		monitor: deps.Monitor,
		mailbox: deps.Mailbox,
		player:  deps.Player,
		logger:  deps.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// WithSound enables the notification sound.
func (m *Model) WithSound(cue domain.SoundCue) *Model {
	m.cue = &cue
	return m
}

// WithTarget preselects the monitored target. Relative paths are made absolute.
func (m *Model) WithTarget(path string) *Model {
	if path == "" {
		return m
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m.target = path
	return m
}

// WithStartDir sets the directory the picker opens in when no target is set.
func (m *Model) WithStartDir(dir string) *Model {
	m.startDir = dir
	return m
}

// Target returns the monitored target, or "" when nothing was selected.
func (m *Model) Target() string {
	return m.target
}

// Init starts draining the mailbox.
func (m *Model) Init() tea.Cmd {
	if m.mailbox == nil {
		return nil
	}
	return m.mailbox.Next()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.forwardToPicker(msg)

	case mailboxMsg:
		_, cmd := m.Update(msg.msg)
		return m, tea.Batch(cmd, m.mailbox.Next())

	case mailboxClosedMsg:
		return m, nil

	case MsgFileChanged:
		return m, m.handleFileChanged(msg)

	case MsgSoundDone:
		if msg.Err != nil {
			m.logger.Error(msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.forwardToPicker(msg)
}

// handleFileChanged queues a dialog and plays the sound. Changes observed by
// a session other than the active one are dropped.
func (m *Model) handleFileChanged(msg MsgFileChanged) tea.Cmd {
	if m.monitor.State() != domain.StateActive || msg.Change.Session != m.monitor.Session() {
		return nil
	}

	m.dialogs = append(m.dialogs, changeDialog(msg.Change))
	return m.playSound()
}

func (m *Model) playSound() tea.Cmd {
	if m.cue == nil || m.player == nil {
		return nil
	}

	ctx, player, cue := m.ctx, m.player, *m.cue
	return func() tea.Msg {
		return MsgSoundDone{Err: player.Play(ctx, cue)}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Abort) {
		return m.quit()
	}

	if len(m.dialogs) > 0 {
		if key.Matches(msg, m.keys.Dismiss) {
			m.dialogs = m.dialogs[1:]
		}
		return nil
	}

	if m.picker != nil {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % controlCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + controlCount - 1) % controlCount
	case key.Matches(msg, m.keys.Activate):
		return m.activate(m.focus)
	case key.Matches(msg, m.keys.Select):
		m.focus = ControlSelect
		return m.activate(ControlSelect)
	case key.Matches(msg, m.keys.Toggle):
		m.focus = ControlToggle
		return m.activate(ControlToggle)
	}
	return nil
}

func (m *Model) activate(c Control) tea.Cmd {
	switch c {
	case ControlSelect:
		return m.openPicker(pickDirectory)
	case ControlToggle:
		m.toggle()
	}
	return nil
}

// toggle starts monitoring when idle and stops it when active. Failures are
// shown as error dialogs and leave the state unchanged.
func (m *Model) toggle() {
	if m.monitor.State() == domain.StateActive {
		if err := m.monitor.Stop(); err != nil {
			m.logger.Error(err)
			m.dialogs = append(m.dialogs, errorDialog(err))
		}
		return
	}

	if err := m.monitor.Start(m.ctx, m.target); err != nil {
		if !errors.Is(err, domain.ErrNoPathSelected) {
			m.logger.Error(err)
		}
		m.dialogs = append(m.dialogs, errorDialog(err))
	}
}

func (m *Model) quit() tea.Cmd {
	if m.monitor.State() == domain.StateActive {
		if err := m.monitor.Stop(); err != nil {
			m.logger.Error(err)
		}
	}
	return tea.Quit
}

func (m *Model) openPicker(stage pickerStage) tea.Cmd {
	m.picker = newPicker(stage, m.pickerDir(), m.pickerHeight())
	return m.picker.Init()
}

// pickerDir is the directory the picker opens in: the current target's
// directory, else the configured start directory, else the working directory.
func (m *Model) pickerDir() string {
	if m.target != "" {
		if _, err := os.Stat(m.target); err == nil {
			return filepath.Dir(m.target)
		}
	}
	if m.startDir != "" {
		return m.startDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m *Model) pickerHeight() int {
	const chrome = 6
	if m.height > chrome {
		return m.height - chrome
	}
	return 0
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		if m.picker.stage == pickDirectory {
			return m.openPicker(pickFile)
		}
		m.picker = nil
		return nil
	}

	if m.picker.stage == pickDirectory && key.Matches(msg, m.keys.Here) {
		m.choose(m.picker.current())
		return nil
	}

	path, ok, cmd := m.picker.Update(msg)
	if ok {
		m.choose(path)
	}
	return cmd
}

func (m *Model) choose(path string) {
	m.target = path
	m.picker = nil
	m.logger.Info(fmt.Sprintf("selected %s", path))
}

func (m *Model) forwardToPicker(msg tea.Msg) tea.Cmd {
	if m.picker == nil {
		return nil
	}
	_, _, cmd := m.picker.Update(msg)
	return cmd
}
