// Package app implements the application layer for nudge.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/nudge/internal/adapters/sound"
	"go.trai.ch/nudge/internal/adapters/tui"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/nudge/internal/engine/monitor"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	watchers     ports.WatcherFactory
	player       ports.SoundPlayer
	teaOptions   []tea.ProgramOption
	isTerminal   func() bool
	soundDirs    []string
	logPath      func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	watchers ports.WatcherFactory,
	player ports.SoundPlayer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		watchers:     watchers,
		player:       player,
		isTerminal:   stdioIsTerminal,
		soundDirs:    sound.SearchDirs(),
		logPath:      DefaultLogPath,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithTerminalCheck replaces the check for an interactive terminal.
func (a *App) WithTerminalCheck(isTerminal func() bool) *App {
	a.isTerminal = isTerminal
	return a
}

// WithSoundDirs replaces the directories searched for the default sound.
func (a *App) WithSoundDirs(dirs ...string) *App {
	a.soundDirs = dirs
	return a
}

// WithDefaultLogPath replaces the fallback location of the log file.
func (a *App) WithDefaultLogPath(fn func() (string, error)) *App {
	a.logPath = fn
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Target preselects the monitored file or folder.
	Target string
	// ConfigPath is an explicit config file. Empty selects the default location.
	ConfigPath string
	// LogFile overrides the configured log file.
	LogFile string
	// LogJSON forces JSON log records.
	LogJSON bool
}

// Run opens the nudge window and blocks until the user quits or ctx is done.
// Monitoring is always stopped before Run returns.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	// 1. Load the configuration
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// 2. The window needs a terminal
	if !a.isTerminal() {
		return domain.ErrNotATerminal
	}

	// 3. Route logs into the log file while the window owns the terminal
	closeLog, err := a.redirectLogs(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	// 4. Assemble the monitor and the window
	mailbox := tui.NewMailbox()
	ctrl := monitor.NewController(a.watchers, NewNotifier(mailbox), a.logger).WithIgnore(cfg.Ignore)

	model := tui.NewModel(ctx, tui.Deps{
		Monitor: ctrl,
		Mailbox: mailbox,
		Player:  a.player,
		Logger:  a.logger,
	}).WithTarget(opts.Target)
	if cue, ok := a.soundCue(cfg); ok {
		model.WithSound(cue)
	}

	teaOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, a.teaOptions...)
	program := tea.NewProgram(model, teaOpts...)

	// 5. Run the window and watch for cancellation concurrently
	g, gctx := errgroup.WithContext(ctx)
	uiDone := make(chan struct{})

	g.Go(func() error {
		defer close(uiDone)
		defer mailbox.Close()

		a.logger.Info("window opened")
		if _, err := program.Run(); err != nil {
			return errors.Join(domain.ErrUIFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-uiDone:
		case <-gctx.Done():
			program.Quit()
		}
		return nil
	})

	runErr := g.Wait()

	// The program has exited, so the controller is no longer shared.
	if err := ctrl.Stop(); err != nil {
		a.logger.Error(err)
	}
	a.logger.Info("window closed")

	return runErr
}

// redirectLogs points the logger at the log file and returns a func that
// restores stderr.
func (a *App) redirectLogs(cfg *domain.Config, opts RunOptions) (func(), error) {
	path := opts.LogFile
	if path == "" {
		path = cfg.Log.File
	}
	if path == "" {
		var err error
		if path, err = a.logPath(); err != nil {
			return nil, errors.Join(domain.ErrLogFileOpenFailed, err)
		}
	}

	f, err := openLogFile(path)
	if err != nil {
		return nil, err
	}

	a.logger.SetJSON(opts.LogJSON || cfg.Log.JSON)
	a.logger.SetOutput(f)

	return func() {
		a.logger.SetOutput(nil)
		_ = f.Close()
	}, nil
}

// soundCue resolves the notification sound. A missing sound disables
// playback but never prevents monitoring.
func (a *App) soundCue(cfg *domain.Config) (domain.SoundCue, bool) {
	if cfg.Sound.Disabled {
		a.logger.Info("notification sound disabled by configuration")
		return domain.SoundCue{}, false
	}

	file, err := sound.Locate(cfg.Sound.File, a.soundDirs...)
	if err != nil {
		a.logger.Error(err)
		a.logger.Warn("continuing without notification sound")
		return domain.SoundCue{}, false
	}

	a.logger.Info(fmt.Sprintf("notification sound: %s", file))
	return domain.SoundCue{File: file, Command: cfg.Sound.Command}, true
}

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
