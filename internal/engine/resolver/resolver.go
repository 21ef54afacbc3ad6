// Package resolver builds merged resource views and resolves references against them.
package resolver

import (
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver resolves resource references to ids. It holds no state and
// performs no I/O, so one value can serve any number of goroutines.
type Resolver struct{}

// New creates a new Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Reference Reference
	ID        int
	// Origin is the namespace whose table supplied the id.
	Origin string
}

// Build merges own with deps. deps must be in precedence order: the flattened,
// depth-first dependency order of own's namespace.
func (r *Resolver) Build(own *domain.ResourceTable, deps []*domain.ResourceTable) (*domain.MergedView, error) {
	return domain.NewMergedView(own, deps)
}

// BuildFromDefinitions generates the own table of namespace from defs and merges it with deps.
// Two definitions with the same (type, name) fail with ErrDuplicateDefinition.
func (r *Resolver) BuildFromDefinitions(
	namespace string,
	defs []domain.Definition,
	deps []*domain.ResourceTable,
) (*domain.MergedView, error) {
	own, err := domain.GenerateTable(namespace, domain.DefaultPackageID, defs)
	if err != nil {
		return nil, err
	}
	return r.Build(own, deps)
}

// ResolveUnqualified resolves (type, name) against the merged view.
func (r *Resolver) ResolveUnqualified(view *domain.MergedView, t domain.ResourceType, name string) (int, error) {
	e, ok := view.Lookup(t, name)
	if !ok {
		return 0, unknownResource(view.Namespace(), t, name)
	}
	return e.ID, nil
}

// ResolveQualified resolves (type, name) in the own table of namespace only.
// namespace must be the view's namespace or one of its transitive dependencies.
func (r *Resolver) ResolveQualified(
	view *domain.MergedView,
	namespace string,
	t domain.ResourceType,
	name string,
) (int, error) {
	table, ok := view.Table(namespace)
	if !ok {
		err := zerr.With(domain.ErrUnknownNamespace, "namespace", namespace)
		err = zerr.With(err, "type", t.String())
		err = zerr.With(err, "name", name)
		return 0, zerr.With(err, "view", view.Namespace())
	}
	id, ok := table.Lookup(t, name)
	if !ok {
		return 0, unknownResource(namespace, t, name)
	}
	return id, nil
}

// ResolveReference parses ref and resolves it qualified or unqualified.
func (r *Resolver) ResolveReference(view *domain.MergedView, ref string) (Resolution, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return Resolution{}, err
	}
	return r.Resolve(view, parsed)
}

// Resolve resolves an already parsed reference.
func (r *Resolver) Resolve(view *domain.MergedView, ref Reference) (Resolution, error) {
	if ref.Qualified() {
		id, err := r.ResolveQualified(view, ref.Namespace, ref.Type, ref.Name)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Reference: ref, ID: id, Origin: ref.Namespace}, nil
	}

	e, ok := view.Lookup(ref.Type, ref.Name)
	if !ok {
		return Resolution{}, unknownResource(view.Namespace(), ref.Type, ref.Name)
	}
	return Resolution{Reference: ref, ID: e.ID, Origin: e.Key.Namespace.String()}, nil
}

func unknownResource(namespace string, t domain.ResourceType, name string) error {
	err := zerr.With(domain.ErrUnknownResource, "namespace", namespace)
	err = zerr.With(err, "type", t.String())
	return zerr.With(err, "name", name)
}
