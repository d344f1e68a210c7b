package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Monitor = (*Controller)(nil)

// Controller owns the lifecycle of the background watcher. It keeps at most
// one session alive and must only be driven from the UI goroutine.
type Controller struct {
	factory  ports.WatcherFactory
	notifier ports.Notifier
	logger   ports.Logger
	ignore   []string
	cooldown time.Duration
	now      func() time.Time

	state   domain.MonitorState
	lastID  uint64
	session *session
}

// session is one Idle→Active→Idle cycle.
type session struct {
	id      uint64
	root    string
	watcher ports.Watcher
	filter  *Filter
	done    chan struct{}
}

// NewController creates an idle controller. Accepted changes are handed to notifier.
func NewController(factory ports.WatcherFactory, notifier ports.Notifier, logger ports.Logger) *Controller {
	return &Controller{
		factory:  factory,
		notifier: notifier,
		logger:   logger,
		cooldown: domain.Cooldown,
		now:      time.Now,
	}
}

// WithIgnore sets the ignore patterns passed to every new watcher.
func (c *Controller) WithIgnore(patterns []string) *Controller {
	c.ignore = patterns
	return c
}

// WithClock replaces the clock used to timestamp events.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Start begins a new monitoring session for target.
func (c *Controller) Start(ctx context.Context, target string) error {
	if c.state == domain.StateActive {
		return errors.Join(domain.ErrAlreadyMonitoring, zerr.With(zerr.New("session active"), "root", c.session.root))
	}

	root, err := domain.ResolveWatchRoot(target)
	if err != nil {
		return err
	}

	w, err := c.factory.NewWatcher(c.ignore)
	if err != nil {
		return errors.Join(domain.ErrWatcherCreateFailed, err)
	}

	if err := w.Start(ctx, root); err != nil {
		_ = w.Stop()
		return err
	}

	c.lastID++
	s := &session{
		id:      c.lastID,
		root:    root,
		watcher: w,
		filter:  NewFilter(c.cooldown),
		done:    make(chan struct{}),
	}
	go c.deliver(s)

	c.session = s
	c.state = domain.StateActive
	c.logger.Info(fmt.Sprintf("monitoring %s", root))
	return nil
}

// deliver runs on the session goroutine. It is the only user of s.filter.
func (c *Controller) deliver(s *session) {
	defer close(s.done)

	for ev := range s.watcher.Events() {
		change, ok := s.filter.Observe(ev, c.now())
		if !ok {
			continue
		}
		change.Session = s.id
		c.notifier.Notify(change)
	}
}

// Stop ends the active session. It returns after the session goroutine has
// exited, so no change of the stopped session is delivered afterwards.
func (c *Controller) Stop() error {
	if c.state == domain.StateIdle {
		return nil
	}

	s := c.session
	err := s.watcher.Stop()
	<-s.done

	c.session = nil
	c.state = domain.StateIdle
	c.logger.Info(fmt.Sprintf("stopped monitoring %s", s.root))

	if err != nil {
		return errors.Join(domain.ErrWatcherCloseFailed, err)
	}
	return nil
}

// Toggle starts monitoring when idle and stops it when active.
func (c *Controller) Toggle(ctx context.Context, target string) error {
	if c.state == domain.StateActive {
		return c.Stop()
	}
	return c.Start(ctx, target)
}

// State returns the current monitoring state.
func (c *Controller) State() domain.MonitorState {
	return c.state
}

// Root returns the watch root of the active session.
func (c *Controller) Root() string {
	if c.session == nil {
		return ""
	}
	return c.session.root
}

// Session returns the active session identifier, or zero when idle.
func (c *Controller) Session() uint64 {
	if c.session == nil {
		return 0
	}
	return c.session.id
}
