package ports

import "go.trai.ch/rsym/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and returns the
	// namespace graph. The graph is not validated.
	Load(cwd string) (*domain.NamespaceGraph, error)

	// DiscoverConfigPaths finds configuration file paths and their modification times.
	// Returns a map of config file paths to their mtime in UnixNano.
	DiscoverConfigPaths(cwd string) (map[string]int64, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing rsym.work.yaml or rsym.yaml.
	DiscoverRoot(cwd string) (string, error)
}
