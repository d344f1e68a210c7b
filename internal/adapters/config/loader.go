// Package config provides the configuration loader for nudge.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory below the user config dir that holds nudge files.
	AppDir = "nudge"
	// FileName is the name of the config file.
	FileName = "config.yaml"
	// SchemaVersion is the config version understood by this build.
	SchemaVersion = "1"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// configDir returns the user config directory. Replaced in tests.
	configDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, configDir: os.UserConfigDir}
}

// DefaultPath returns the location of the config file below the user config dir.
func (l *Loader) DefaultPath() (string, error) {
	dir, err := l.configDir()
	if err != nil {
		return "", errors.Join(domain.ErrConfigReadFailed, err)
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Load reads the configuration at path. An empty path selects the default
// location, where a missing file yields the built-in defaults. A missing file
// at an explicit path is an error.
func (l *Loader) Load(path string) (*domain.Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = l.DefaultPath()
		if err != nil {
			l.Logger.Warn(fmt.Sprintf("no user config directory, using defaults: %v", err))
			return &domain.Config{}, nil
		}
	}

	// #nosec G304 -- path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &domain.Config{}, nil
		}
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	var file File
	if err := decodeStrict(data, &file); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}

	if file.Version != "" && file.Version != SchemaVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, file.Version, SchemaVersion))
	}

	if err := validate(&file); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}

	if _, err := patternmatcher.New(file.Ignore); err != nil {
		return nil, errors.Join(domain.ErrInvalidIgnorePattern, zerr.With(err, "path", path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return toDomain(&file, abs), nil
}

// decodeStrict unmarshals YAML and rejects unknown keys. An empty document
// decodes to the zero value.
func decodeStrict(data []byte, target *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func validate(file *File) error {
	if len(file.Sound.Command) > 0 && strings.TrimSpace(file.Sound.Command[0]) == "" {
		return zerr.New("sound.command must start with a program name")
	}
	for _, pattern := range file.Ignore {
		if strings.TrimSpace(pattern) == "" {
			return zerr.New("ignore patterns must not be empty")
		}
	}
	return nil
}

// toDomain converts the file schema to domain.Config. Relative paths are
// resolved against the directory of the config file.
func toDomain(file *File, configPath string) *domain.Config {
	dir := filepath.Dir(configPath)
	return &domain.Config{
		Path: configPath,
		Sound: domain.SoundConfig{
			File:     resolvePath(dir, file.Sound.File),
			Command:  file.Sound.Command,
			Disabled: file.Sound.Disabled,
		},
		Log: domain.LogConfig{
			File: resolvePath(dir, file.Log.File),
			JSON: file.Log.JSON,
		},
		Ignore: file.Ignore,
	}
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
