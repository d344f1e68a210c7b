package config

// WithConfigDir replaces the user config directory lookup.
func (l *Loader) WithConfigDir(fn func() (string, error)) *Loader {
	l.configDir = fn
	return l
}
