package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nudge/internal/adapters/watcher"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/nudge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const eventTimeout = 2 * time.Second

func newLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

// startWatcher starts a watcher on root and forwards its events to a channel.
func startWatcher(t *testing.T, root string, ignore []string) (*watcher.Watcher, <-chan ports.WatchEvent) {
	t.Helper()

	w, err := watcher.NewWatcher(newLogger(t), ignore)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), root))

	out := make(chan ports.WatchEvent, 256)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			out <- ev
		}
	}()

	t.Cleanup(func() { _ = w.Stop() })
	return w, out
}

// waitFor returns the first event for path with the given operation.
func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string, op ports.WatchOp) ports.WatchEvent {
	t.Helper()

	deadline := time.After(eventTimeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed before %s", path)
			}
			if ev.Path == path && ev.Operation == op {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event on %s", path)
		}
	}
}

// drain collects events until the stream is quiet for the given duration.
func drain(events <-chan ports.WatchEvent, quiet time.Duration) []ports.WatchEvent {
	var got []ports.WatchEvent
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-time.After(quiet):
			return got
		}
	}
}

func TestWatcher_FileEvents(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root, nil)

	file := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o600))

	ev := waitFor(t, events, file, ports.OpCreate)
	assert.False(t, ev.IsDir)

	require.NoError(t, os.Remove(file))
	ev = waitFor(t, events, file, ports.OpRemove)
	assert.False(t, ev.IsDir)
}

func TestWatcher_WriteEvent(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "existing.txt")
	require.NoError(t, os.WriteFile(file, []byte("one"), 0o600))

	_, events := startWatcher(t, root, nil)

	require.NoError(t, os.WriteFile(file, []byte("two"), 0o600))
	ev := waitFor(t, events, file, ports.OpWrite)
	assert.False(t, ev.IsDir)
}

func TestWatcher_DirectoryEventsAreMarked(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root, nil)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o750))
	ev := waitFor(t, events, sub, ports.OpCreate)
	assert.True(t, ev.IsDir)

	require.NoError(t, os.Remove(sub))
	ev = waitFor(t, events, sub, ports.OpRemove)
	assert.True(t, ev.IsDir, "removed directories are recognised from the watch list")
}

func TestWatcher_Recursive(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "nested", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	_, events := startWatcher(t, root, nil)

	t.Run("existing subdirectories", func(t *testing.T) {
		file := filepath.Join(nested, "b.txt")
		require.NoError(t, os.WriteFile(file, []byte("b"), 0o600))
		waitFor(t, events, file, ports.OpCreate)
	})

	t.Run("subdirectories created while watching", func(t *testing.T) {
		sub := filepath.Join(root, "later")
		require.NoError(t, os.Mkdir(sub, 0o750))
		waitFor(t, events, sub, ports.OpCreate)

		file := filepath.Join(sub, "c.txt")
		require.NoError(t, os.WriteFile(file, []byte("c"), 0o600))
		waitFor(t, events, file, ports.OpCreate)
	})
}

func TestWatcher_MovedInDirectoryReportsFiles(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	batch := filepath.Join(outside, "batch")
	require.NoError(t, os.MkdirAll(filepath.Join(batch, "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(batch, "report.txt"), []byte("r"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(batch, "nested", "deep.txt"), []byte("d"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(batch, "skip.log"), []byte("s"), 0o600))

	_, events := startWatcher(t, root, []string{"**/*.log"})

	moved := filepath.Join(root, "batch")
	require.NoError(t, os.Rename(batch, moved))

	ev := waitFor(t, events, moved, ports.OpCreate)
	assert.True(t, ev.IsDir)

	// Files are reported in walk order.
	waitFor(t, events, filepath.Join(moved, "nested", "deep.txt"), ports.OpCreate)
	ev = waitFor(t, events, filepath.Join(moved, "report.txt"), ports.OpCreate)
	assert.False(t, ev.IsDir)

	for _, ev := range drain(events, 200*time.Millisecond) {
		assert.NotEqual(t, filepath.Join(moved, "skip.log"), ev.Path)
	}

	// The moved-in subtree is watched as well.
	later := filepath.Join(moved, "nested", "later.txt")
	require.NoError(t, os.WriteFile(later, []byte("l"), 0o600))
	waitFor(t, events, later, ports.OpCreate)
}

func TestWatcher_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o750))

	_, events := startWatcher(t, root, []string{"*.log", "build"})

	require.NoError(t, os.WriteFile(filepath.Join(root, "debug.log"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "build", "out.bin"), []byte("x"), 0o600))
	kept := filepath.Join(root, "kept.txt")
	require.NoError(t, os.WriteFile(kept, []byte("x"), 0o600))

	waitFor(t, events, kept, ports.OpCreate)
	for _, ev := range drain(events, 200*time.Millisecond) {
		assert.NotEqual(t, filepath.Join(root, "debug.log"), ev.Path)
		assert.NotEqual(t, filepath.Join(root, "build", "out.bin"), ev.Path)
	}
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	root := t.TempDir()
	w, events := startWatcher(t, root, nil)

	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(eventTimeout):
		t.Fatal("event stream not closed after Stop")
	}

	// Stop is idempotent.
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := watcher.NewWatcher(newLogger(t), nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(eventTimeout):
		t.Fatal("Stop blocked on an unstarted watcher")
	}

	for range w.Events() {
		t.Fatal("unexpected event")
	}
}

func TestNewWatcher_InvalidIgnorePattern(t *testing.T) {
	_, err := watcher.NewWatcher(newLogger(t), []string{"!"})
	require.ErrorIs(t, err, domain.ErrInvalidIgnorePattern)
}

func TestFactory_NewWatcher(t *testing.T) {
	f := watcher.NewFactory(newLogger(t))

	w, err := f.NewWatcher(nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NoError(t, w.Stop())

	_, err = f.NewWatcher([]string{"!"})
	require.ErrorIs(t, err, domain.ErrInvalidIgnorePattern)
}
