// Package filter compiles row predicates for resource tables using expr-lang.
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FilterCompiler = (*Compiler)(nil)

// Row is the environment a filter expression is evaluated against.
//
//	type == "layout" && local
//	origin startsWith "org.smart" && !shadows
type Row struct {
	// Namespace is the namespace whose view is being listed.
	Namespace string `expr:"namespace"`
	// Origin is the namespace that defines the row.
	Origin string `expr:"origin"`
	Type   string `expr:"type"`
	Name   string `expr:"name"`
	ID     int    `expr:"id"`
	// Local is true when the row is defined by the view's own namespace.
	Local bool `expr:"local"`
	// Shadows is true when the row hides a definition from a later namespace.
	Shadows bool `expr:"shadows"`
}

// Compiler implements ports.FilterCompiler.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile type-checks expression against Row once; the returned predicate
// only runs the compiled program.
func (c *Compiler) Compile(expression string) (ports.Predicate, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, zerr.With(domain.ErrInvalidFilter, "filter", expression)
	}

	program, err := expr.Compile(expression, expr.Env(Row{}), expr.AsBool())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidFilter.Error()), "filter", expression)
	}

	p := &predicate{program: program, expression: expression}
	return p.match, nil
}

type predicate struct {
	program    *vm.Program
	expression string

	// Shadow set of the last view seen; rows of one view arrive together.
	view    *domain.MergedView
	shadows map[domain.Symbol]struct{}
}

func (p *predicate) match(view *domain.MergedView, row domain.ViewEntry) (bool, error) {
	if p.view != view {
		p.view = view
		p.shadows = make(map[domain.Symbol]struct{})
		for _, s := range view.Shadowed() {
			p.shadows[s.Symbol] = struct{}{}
		}
	}

	_, shadows := p.shadows[row.Key.Symbol()]
	env := Row{
		Namespace: view.Namespace(),
		Origin:    row.Key.Namespace.String(),
		Type:      row.Key.Type.String(),
		Name:      row.Key.Name.String(),
		ID:        row.ID,
		Local:     row.Key.Namespace.String() == view.Namespace(),
		Shadows:   shadows,
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrInvalidFilter.Error()), "filter", p.expression)
	}
	matched, _ := out.(bool)
	return matched, nil
}
