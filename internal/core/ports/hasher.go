package ports

import "go.trai.ch/rsym/internal/core/domain"

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashNamespace computes a content hash of everything a namespace's table is generated from.
	HashNamespace(ns *domain.Namespace) (string, error)
}
