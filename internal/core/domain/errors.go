package domain

import "go.trai.ch/zerr"

var (
	// ErrNoPathSelected is returned when monitoring is started before a target was chosen.
	ErrNoPathSelected = zerr.New("no file or folder selected")

	// ErrAlreadyMonitoring is returned when a second monitoring session is requested.
	ErrAlreadyMonitoring = zerr.New("monitoring is already active")

	// ErrWatchRootUnavailable is returned when the target cannot be stat'ed.
	ErrWatchRootUnavailable = zerr.New("failed to access monitored path")

	// ErrWatcherCreateFailed is returned when the file system watcher cannot be created.
	ErrWatcherCreateFailed = zerr.New("failed to create file watcher")

	// ErrWatchFailed is returned when a directory cannot be registered with the watcher.
	ErrWatchFailed = zerr.New("failed to watch directory")

	// ErrWatcherCloseFailed is returned when the file system watcher cannot be closed.
	ErrWatcherCloseFailed = zerr.New("failed to close file watcher")

	// ErrInvalidIgnorePattern is returned when an ignore pattern cannot be compiled.
	ErrInvalidIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrSoundNotFound is returned when the notification sound file does not exist.
	ErrSoundNotFound = zerr.New("notification sound not found")

	// ErrNoSoundPlayer is returned when no audio player command is available.
	ErrNoSoundPlayer = zerr.New("no audio player found")

	// ErrSoundPlaybackFailed is returned when the audio player exits with an error.
	ErrSoundPlaybackFailed = zerr.New("failed to play notification sound")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrLogFileOpenFailed is returned when the log file cannot be opened.
	ErrLogFileOpenFailed = zerr.New("failed to open log file")

	// ErrNotATerminal is returned when the UI is started without an interactive terminal.
	ErrNotATerminal = zerr.New("nudge needs an interactive terminal")

	// ErrUIFailed is returned when the terminal UI terminates abnormally.
	ErrUIFailed = zerr.New("terminal UI failed")
)
