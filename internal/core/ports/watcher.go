package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed away from Path.
	OpRename
)

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
	// IsDir reports whether Path is (or was) a directory.
	IsDir bool
}

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and waits until no more events will be produced.
	Stop() error
	// Events returns an iterator of file system events.
	// The iterator ends once the watcher is stopped.
	Events() iter.Seq[WatchEvent]
}

// WatcherFactory creates a fresh Watcher for every monitoring session.
type WatcherFactory interface {
	// NewWatcher returns an unstarted watcher. Paths matching one of the
	// ignore patterns (relative to the watch root) are not reported.
	NewWatcher(ignore []string) (Watcher, error)
}
