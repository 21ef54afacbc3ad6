package ports

import "go.trai.ch/rsym/internal/core/domain"

// ResourceScanner derives resource definitions from a resource directory.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type ResourceScanner interface {
	// Scan walks dir and returns one definition per (type, name) found.
	Scan(dir string) ([]domain.Definition, error)
}
