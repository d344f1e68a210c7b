package domain

// DefaultSoundFile is the notification sound looked up next to the executable
// and in the working directory when no sound file is configured.
const DefaultSoundFile = "notification.wav"

// Config is the user configuration of nudge.
type Config struct {
	// Path is the file the configuration was read from. Empty for defaults.
	Path   string
	Sound  SoundConfig
	Log    LogConfig
	Ignore []string
}

// SoundConfig configures the notification sound.
type SoundConfig struct {
	// File is the sound resource. Relative paths are relative to the config file.
	File string
	// Command is the player argv; the sound file is appended as the last argument.
	Command []string
	// Disabled turns playback off.
	Disabled bool
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	File string
	JSON bool
}

// SoundCue is a resolved request to play the notification sound.
type SoundCue struct {
	File    string
	Command []string
}
