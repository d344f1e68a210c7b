// Package sound plays the notification sound through an external audio player.
package sound

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SoundPlayer = (*Player)(nil)

// defaultPlayers are tried in order when no player command is configured.
// The sound file is appended to each argv.
var defaultPlayers = [][]string{
	{"paplay"},
	{"pw-play"},
	{"aplay", "-q"},
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Player implements ports.SoundPlayer by running an audio player process.
type Player struct {
	logger     ports.Logger
	candidates [][]string
	lookPath   func(string) (string, error)
}

// NewPlayer creates a player that picks the first installed default player.
func NewPlayer(logger ports.Logger) *Player {
	return &Player{
		logger:     logger,
		candidates: defaultPlayers,
		lookPath:   exec.LookPath,
	}
}

// WithCandidates replaces the list of players probed when a cue carries no command.
func (p *Player) WithCandidates(candidates [][]string) *Player {
	p.candidates = candidates
	return p
}

// Play plays cue.File and waits for the player to exit.
func (p *Player) Play(ctx context.Context, cue domain.SoundCue) error {
	if _, err := os.Stat(cue.File); err != nil {
		return errors.Join(domain.ErrSoundNotFound, zerr.With(err, "file", cue.File))
	}

	argv, err := p.command(cue)
	if err != nil {
		return err
	}
	argv = append(argv, cue.File)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // player command is user configured
	stderr := &logWriter{logger: p.logger}
	cmd.Stderr = stderr

	runErr := cmd.Run()
	_ = stderr.Close()

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return errors.Join(
			domain.ErrSoundPlaybackFailed,
			zerr.With(zerr.With(runErr, "player", argv[0]), "exit_code", exitCode),
		)
	}
	return nil
}

// command returns the configured player argv, or the first installed candidate.
func (p *Player) command(cue domain.SoundCue) ([]string, error) {
	if len(cue.Command) > 0 {
		return append([]string(nil), cue.Command...), nil
	}

	tried := make([]string, 0, len(p.candidates))
	for _, candidate := range p.candidates {
		if len(candidate) == 0 {
			continue
		}
		if path, err := p.lookPath(candidate[0]); err == nil {
			argv := append([]string{path}, candidate[1:]...)
			return argv, nil
		}
		tried = append(tried, candidate[0])
	}
	return nil, errors.Join(domain.ErrNoSoundPlayer, zerr.With(zerr.New("none installed"), "tried", strings.Join(tried, ",")))
}

// Locate finds the sound resource. A configured file must exist; otherwise
// domain.DefaultSoundFile is searched for in dirs, in order.
func Locate(configured string, dirs ...string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", errors.Join(domain.ErrSoundNotFound, zerr.With(err, "file", configured))
		}
		return configured, nil
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, domain.DefaultSoundFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", errors.Join(domain.ErrSoundNotFound, zerr.With(zerr.New("not in search path"), "dirs", strings.Join(dirs, ",")))
}

// SearchDirs returns the directories searched for the default sound: the
// directory of the running executable, then the working directory.
func SearchDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// logWriter forwards player diagnostics to the logger line by line.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSpace(string(line))
	if msg == "" {
		return
	}
	w.logger.Warn("sound player: " + msg)
}
