package ports

import "go.trai.ch/nudge/internal/core/domain"

// ConfigLoader loads the user configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path selects the default
	// location, where a missing file yields the defaults.
	Load(path string) (*domain.Config, error)
}
