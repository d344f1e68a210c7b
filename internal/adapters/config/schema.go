package config

// File represents the structure of the nudge config.yaml file.
type File struct {
	Version string   `yaml:"version"`
	Sound   SoundDTO `yaml:"sound"`
	Log     LogDTO   `yaml:"log"`
	Ignore  []string `yaml:"ignore"`
}

// SoundDTO configures the notification sound.
type SoundDTO struct {
	File     string   `yaml:"file"`
	Command  []string `yaml:"command"`
	Disabled bool     `yaml:"disabled"`
}

// LogDTO configures the diagnostic log.
type LogDTO struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}
