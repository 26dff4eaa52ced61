package ports

import "go.trai.ch/ship/internal/core/domain"

// SettingsLoader defines the interface for loading the runtime
// configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the configuration from the given working directory.
	// A missing configuration file yields the documented defaults.
	Load(cwd string) (*domain.Settings, error)
}
