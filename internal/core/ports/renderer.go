package ports

import (
	"io"

	"go.trai.ch/rsym/internal/core/domain"
)

// TableRenderer writes view rows in one output format.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type TableRenderer interface {
	// Render writes rows of view to w.
	Render(w io.Writer, view *domain.MergedView, rows []domain.ViewEntry) error
}
