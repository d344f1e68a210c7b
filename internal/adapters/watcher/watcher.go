// Package watcher implements recursive file system watching on top of fsnotify.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/moby/patternmatcher"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
// A Watcher serves a single Start/Stop cycle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	ignore    *patternmatcher.PatternMatcher
	root      string
	events    chan ports.WatchEvent
	stop      chan struct{}
	done      chan struct{}

	mu   sync.Mutex
	dirs map[string]struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	stopErr   error
}

// NewWatcher creates a new file system watcher. Paths matching one of the
// ignore patterns, relative to the watch root, are neither watched nor reported.
func NewWatcher(logger ports.Logger, ignore []string) (*Watcher, error) {
	var pm *patternmatcher.PatternMatcher
	if len(ignore) > 0 {
		var err error
		pm, err = patternmatcher.New(ignore)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidIgnorePattern, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(domain.ErrWatcherCreateFailed, err)
	}

	return &Watcher{
		fsWatcher: fsw,
		logger:    logger,
		ignore:    pm,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		dirs:      make(map[string]struct{}),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = root

	// Walk the directory tree and add all directories to the watcher.
	for dir := range w.watchRecursively(root) {
		if err := w.add(dir); err != nil {
			return errors.Join(domain.ErrWatchFailed, zerr.With(err, "path", dir))
		}
	}

	w.startOnce.Do(func() {
		go w.processEvents(ctx)
	})

	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
// After Stop returns the Events iterator has ended.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.stopErr = w.fsWatcher.Close()
		w.startOnce.Do(func() {
			// Never started: nothing will close the events channel.
			close(w.events)
			close(w.done)
		})
		<-w.done
	})
	return w.stopErr
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) add(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.dirs[dir] = struct{}{}
	w.mu.Unlock()
	return nil
}

// forget removes a directory (and everything below it) from the known set.
// It reports whether path was a watched directory.
func (w *Watcher) forget(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, known := w.dirs[path]
	if !known {
		return false
	}
	prefix := path + string(filepath.Separator)
	for dir := range w.dirs {
		if dir == path || strings.HasPrefix(dir, prefix) {
			delete(w.dirs, dir)
		}
	}
	return true
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if d.IsDir() {
				if path != w.root && w.shouldSkip(path) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// shouldSkip returns true if path matches one of the ignore patterns.
func (w *Watcher) shouldSkip(path string) bool {
	if w.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	matched, err := w.ignore.MatchesOrParentMatches(rel)
	if err != nil {
		return false
	}
	return matched
}

// processEvents converts raw fsnotify events into ports.WatchEvent values.
//
//nolint:cyclop // multiple event sources and shutdown paths
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.shouldSkip(event.Name) {
				continue
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}

			if !w.send(ctx, *watchEvent) {
				return
			}

			// A new or moved-in directory may already hold files. Register its
			// subtree and report those files as created.
			if watchEvent.Operation == ports.OpCreate && watchEvent.IsDir {
				for ev := range w.adoptTree(event.Name) {
					if !w.send(ctx, ev) {
						return
					}
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "file system watcher error"))
		}
	}
}

// send delivers ev unless the watcher is stopping.
func (w *Watcher) send(ctx context.Context, ev ports.WatchEvent) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

// adoptTree adds every directory below dir to the watcher and yields a create
// event for each regular file found on the way.
func (w *Watcher) adoptTree(dir string) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // entries removed during the walk are skipped
			}
			if w.shouldSkip(path) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if err := w.add(path); err != nil {
					w.logger.Warn("watcher: cannot watch " + path + ": " + err.Error())
				}
				return nil
			}
			if d.Type().IsRegular() && !yield(ports.WatchEvent{Path: path, Operation: ports.OpCreate}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
// Attribute changes are reported as writes.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := event.Name

	switch {
	case event.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate, IsDir: isDir(path)}
	case event.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite, IsDir: isDir(path)}
	case event.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove, IsDir: w.forget(path)}
	case event.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename, IsDir: w.forget(path)}
	case event.Has(fsnotify.Chmod):
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite, IsDir: isDir(path)}
	}

	return nil
}

func isDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}
