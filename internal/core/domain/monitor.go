// Package domain holds the core types of nudge: the monitored target, the
// monitoring state and the changes reported to the user.
package domain

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// Cooldown is the window during which repeated events for the same path are suppressed.
const Cooldown = 500 * time.Millisecond

// MonitorState is the two-valued monitoring flag.
type MonitorState uint8

const (
	// StateIdle means no watcher is running.
	StateIdle MonitorState = iota
	// StateActive means a watcher session is delivering events.
	StateActive
)

// String returns a lower-case name for the state.
func (s MonitorState) String() string {
	switch s {
	case StateActive:
		return "active"
	default:
		return "idle"
	}
}

// ChangeKind is the kind of file change that is reported to the user.
type ChangeKind uint8

const (
	// ChangeCreated indicates a file was created.
	ChangeCreated ChangeKind = iota
	// ChangeModified indicates a file was written to.
	ChangeModified
	// ChangeDeleted indicates a file was removed.
	ChangeDeleted
)

// String returns a past-tense verb for the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	default:
		return "modified"
	}
}

// Change is a filesystem event that passed the cooldown filter.
type Change struct {
	// Session identifies the monitoring session that observed the change.
	Session uint64
	// Path is the absolute path of the changed file.
	Path string
	// Kind is the type of change.
	Kind ChangeKind
	// At is when the change was accepted.
	At time.Time
}

// ResolveWatchRoot returns the directory that has to be registered with the
// watcher for the given target: the target itself when it is a directory,
// otherwise its parent directory.
func ResolveWatchRoot(target string) (string, error) {
	if target == "" {
		return "", ErrNoPathSelected
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", errors.Join(ErrWatchRootUnavailable, zerr.With(err, "path", target))
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Join(ErrWatchRootUnavailable, zerr.With(err, "path", abs))
	}

	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}
