package ports

import "go.trai.ch/rsym/internal/core/domain"

// Predicate reports whether a view row should be kept.
type Predicate func(view *domain.MergedView, row domain.ViewEntry) (bool, error)

// FilterCompiler compiles user supplied row filter expressions.
//
//go:generate mockgen -source=filter.go -destination=mocks/mock_filter.go -package=mocks
type FilterCompiler interface {
	// Compile turns an expression into a reusable predicate.
	Compile(expression string) (Predicate, error)
}
