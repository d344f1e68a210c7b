package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerStage is the kind of entry the picker currently accepts.
type pickerStage uint8

const (
	pickDirectory pickerStage = iota
	pickFile
)

const defaultPickerHeight = 10

// picker chooses the monitored target. It starts as a directory picker;
// cancelling it falls back to a file picker.
type picker struct {
	stage pickerStage
	fp    filepicker.Model
}

func newPicker(stage pickerStage, dir string, height int) *picker {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.ShowPermissions = false
	fp.ShowSize = stage == pickFile
	fp.DirAllowed = stage == pickDirectory
	fp.FileAllowed = stage == pickFile
	if height > 0 {
		fp.Height = height
	} else {
		fp.Height = defaultPickerHeight
	}
	fp.Styles.Cursor = pickerCursorStyle
	fp.Styles.Selected = pickerSelectedStyle
	fp.Styles.Directory = pickerDirectoryStyle

	return &picker{stage: stage, fp: fp}
}

// Init reads the starting directory.
func (p *picker) Init() tea.Cmd {
	return p.fp.Init()
}

// Update forwards msg to the file picker and returns the chosen absolute path
// once an entry was selected.
func (p *picker) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	var cmd tea.Cmd
	p.fp, cmd = p.fp.Update(msg)

	if ok, path := p.fp.DidSelectFile(msg); ok {
		return absolute(path), true, cmd
	}
	return "", false, cmd
}

// current returns the absolute path of the directory being browsed.
func (p *picker) current() string {
	return absolute(p.fp.CurrentDirectory)
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (p *picker) title() string {
	if p.stage == pickFile {
		return "Select a file"
	}
	return "Select a folder"
}

func (p *picker) View() string {
	return p.fp.View()
}
