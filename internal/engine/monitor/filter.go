// Package monitor implements the monitoring session lifecycle and the
// per-path cooldown filter between raw watcher events and notifications.
package monitor

import (
	"time"

	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
)

// Filter suppresses repeated events for the same path within a cooldown window.
// It is owned by a single session's delivery goroutine and is not safe for
// concurrent use.
type Filter struct {
	cooldown time.Duration
	last     map[string]time.Time
}

// NewFilter creates a filter with an empty cooldown table.
func NewFilter(cooldown time.Duration) *Filter {
	return &Filter{
		cooldown: cooldown,
		last:     make(map[string]time.Time),
	}
}

// Accept reports whether an event for path at now should be forwarded.
// A path that was never accepted before is always accepted.
func (f *Filter) Accept(path string, now time.Time) bool {
	if last, seen := f.last[path]; seen && now.Sub(last) <= f.cooldown {
		return false
	}
	f.last[path] = now
	return true
}

// Observe applies the filter to a watcher event and returns the resulting
// change. Directory events are never forwarded. A file renamed away from its
// path is reported as deleted; its new name arrives as a separate create.
func (f *Filter) Observe(ev ports.WatchEvent, now time.Time) (domain.Change, bool) {
	if ev.IsDir {
		return domain.Change{}, false
	}

	var kind domain.ChangeKind
	switch ev.Operation {
	case ports.OpCreate:
		kind = domain.ChangeCreated
	case ports.OpWrite:
		kind = domain.ChangeModified
	case ports.OpRemove, ports.OpRename:
		kind = domain.ChangeDeleted
	default:
		return domain.Change{}, false
	}

	if !f.Accept(ev.Path, now) {
		return domain.Change{}, false
	}
	return domain.Change{Path: ev.Path, Kind: kind, At: now}, true
}
