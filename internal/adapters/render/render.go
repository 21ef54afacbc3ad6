// Package render writes merged view rows as text, R.txt or JSON.
package render

import (
	"go.trai.ch/rsym/internal/adapters/detector"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
)

// Format names an output format of rsym table.
type Format string

const (
	// FormatText is a human readable table.
	FormatText Format = "text"
	// FormatRTxt is the aapt text symbol format.
	FormatRTxt Format = "rtxt"
	// FormatJSON is a JSON document with rows and shadowed entries.
	FormatJSON Format = "json"
)

// New returns the renderer for format. mode only affects FormatText.
func New(format string, mode detector.OutputMode) (ports.TableRenderer, error) {
	switch Format(format) {
	case FormatText, "":
		if mode == detector.ModePretty {
			return NewPrettyRenderer(), nil
		}
		return NewTextRenderer(), nil
	case FormatRTxt:
		return NewRTxtRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownFormat, "format", format)
	}
}

// shadowSet returns the symbols whose winning row hides another definition.
func shadowSet(view *domain.MergedView) map[domain.Symbol][]string {
	set := make(map[domain.Symbol][]string)
	for _, s := range view.Shadowed() {
		set[s.Symbol] = append(set[s.Symbol], s.Hidden.String())
	}
	return set
}
