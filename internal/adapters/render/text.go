package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/rsym/internal/ui/style"
)

var (
	_ ports.TableRenderer = (*TextRenderer)(nil)
	_ ports.TableRenderer = (*PrettyRenderer)(nil)
)

var headers = []string{"TYPE", "NAME", "ID", "ORIGIN"}

// TextRenderer writes aligned, unstyled columns.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render implements ports.TableRenderer.
func (r *TextRenderer) Render(w io.Writer, view *domain.MergedView, rows []domain.ViewEntry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range cells(view, rows) {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// PrettyRenderer writes a bordered, colored table for terminals.
type PrettyRenderer struct{}

// NewPrettyRenderer creates a new PrettyRenderer.
func NewPrettyRenderer() *PrettyRenderer {
	return &PrettyRenderer{}
}

// Render implements ports.TableRenderer.
func (r *PrettyRenderer) Render(w io.Writer, view *domain.MergedView, rows []domain.ViewEntry) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Slate)).
		Headers(headers...).
		Rows(cells(view, rows)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Header.Padding(0, 1)
			case col == len(headers)-1:
				return style.Origin.Padding(0, 1)
			default:
				return cell
			}
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", style.Header.Render(view.Namespace()), t.Render())
	return err
}

// cells formats rows; the origin column lists hidden namespaces after the winner.
func cells(view *domain.MergedView, rows []domain.ViewEntry) [][]string {
	shadows := shadowSet(view)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		origin := row.Key.Namespace.String()
		if hidden, ok := shadows[row.Key.Symbol()]; ok {
			origin += " " + style.Arrow + " shadows " + strings.Join(hidden, ", ")
		}
		out = append(out, []string{
			row.Key.Type.String(),
			row.Key.Name.String(),
			fmt.Sprintf("0x%08x", row.ID),
			origin,
		})
	}
	return out
}
