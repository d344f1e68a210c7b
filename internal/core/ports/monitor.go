package ports

import (
	"context"

	"go.trai.ch/nudge/internal/core/domain"
)

// Notifier receives the changes that passed the cooldown filter.
// Notify is called from the watcher's goroutine and must not block.
//
//go:generate mockgen -source=monitor.go -destination=mocks/mock_monitor.go -package=mocks
type Notifier interface {
	Notify(change domain.Change)
}

// Monitor owns the lifecycle of a monitoring session.
// All methods are called from the UI goroutine.
type Monitor interface {
	// Start begins monitoring the target. It fails with domain.ErrNoPathSelected
	// when target is empty.
	Start(ctx context.Context, target string) error
	// Stop ends the active session and returns once no more changes can be delivered.
	Stop() error
	// State returns the current monitoring state.
	State() domain.MonitorState
	// Root returns the watch root of the active session.
	Root() string
	// Session returns the identifier of the active session, or zero when idle.
	Session() uint64
}
