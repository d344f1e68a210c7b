package watcher

import "go.trai.ch/nudge/internal/core/ports"

var _ ports.WatcherFactory = (*Factory)(nil)

// Factory creates a fresh fsnotify watcher per monitoring session.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new watcher factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewWatcher implements ports.WatcherFactory.
func (f *Factory) NewWatcher(ignore []string) (ports.Watcher, error) {
	w, err := NewWatcher(f.logger, ignore)
	if err != nil {
		return nil, err
	}
	return w, nil
}
