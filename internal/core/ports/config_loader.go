// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/symres/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, layered over the defaults.
	// A missing file is not an error.
	Load(path string) (*domain.Config, error)
}
