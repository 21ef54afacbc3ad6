package render

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
)

var _ ports.TableRenderer = (*JSONRenderer)(nil)

// JSONRenderer writes the view as an indented JSON document.
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonView struct {
	Namespace    string       `json:"namespace"`
	Dependencies []string     `json:"dependencies"`
	Entries      []jsonEntry  `json:"entries"`
	Shadowed     []jsonShadow `json:"shadowed"`
}

type jsonEntry struct {
	Type   domain.ResourceType `json:"type"`
	Name   string              `json:"name"`
	ID     string              `json:"id"`
	Origin string              `json:"origin"`
}

type jsonShadow struct {
	Type   domain.ResourceType `json:"type"`
	Name   string              `json:"name"`
	Winner string              `json:"winner"`
	Hidden string              `json:"hidden"`
}

// Render implements ports.TableRenderer. Shadowed entries are limited to the
// symbols present in rows.
func (r *JSONRenderer) Render(w io.Writer, view *domain.MergedView, rows []domain.ViewEntry) error {
	doc := jsonView{
		Namespace:    view.Namespace(),
		Dependencies: view.Namespaces()[1:],
		Entries:      make([]jsonEntry, 0, len(rows)),
		Shadowed:     []jsonShadow{},
	}

	listed := make(map[domain.Symbol]struct{}, len(rows))
	for _, row := range rows {
		listed[row.Key.Symbol()] = struct{}{}
		doc.Entries = append(doc.Entries, jsonEntry{
			Type:   row.Key.Type,
			Name:   row.Key.Name.String(),
			ID:     fmt.Sprintf("0x%08x", row.ID),
			Origin: row.Key.Namespace.String(),
		})
	}
	for _, s := range view.Shadowed() {
		if _, ok := listed[s.Symbol]; !ok {
			continue
		}
		doc.Shadowed = append(doc.Shadowed, jsonShadow{
			Type:   s.Symbol.Type,
			Name:   s.Symbol.Name.String(),
			Winner: s.Winner.String(),
			Hidden: s.Hidden.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
