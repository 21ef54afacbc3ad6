package ports

import "go.trai.ch/rsym/internal/core/domain"

// TableCache stores generated resource tables keyed by the hash of their definitions.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TableCache interface {
	// Get retrieves the table stored under key.
	// Returns nil, nil if not found.
	Get(root, key string) (*domain.ResourceTable, error)

	// Put stores the table under key.
	Put(root, key string, table *domain.ResourceTable) error
}
