package app

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
)

// DefaultLogPath returns <user cache dir>/nudge/nudge.log.
func DefaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nudge", "nudge.log"), nil
}

// openLogFile opens path for appending, creating missing parent directories.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirPerm); err != nil {
		return nil, errors.Join(domain.ErrLogFileOpenFailed, zerr.With(err, "path", path))
	}

	// #nosec G304 -- path is chosen by the user
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil, errors.Join(domain.ErrLogFileOpenFailed, zerr.With(err, "path", path))
	}
	return f, nil
}
