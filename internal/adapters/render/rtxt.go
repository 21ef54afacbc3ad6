package render

import (
	"io"

	"go.trai.ch/rsym/internal/adapters/rtxt"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
)

var _ ports.TableRenderer = (*RTxtRenderer)(nil)

// RTxtRenderer writes rows in aapt R.txt format.
type RTxtRenderer struct{}

// NewRTxtRenderer creates a new RTxtRenderer.
func NewRTxtRenderer() *RTxtRenderer {
	return &RTxtRenderer{}
}

// Render implements ports.TableRenderer.
func (r *RTxtRenderer) Render(w io.Writer, _ *domain.MergedView, rows []domain.ViewEntry) error {
	return rtxt.Write(w, func(yield func(domain.Entry) bool) {
		for _, row := range rows {
			if !yield(domain.Entry{Type: row.Key.Type, Name: row.Key.Name.String(), ID: row.ID}) {
				return
			}
		}
	})
}
