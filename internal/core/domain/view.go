package domain

import (
	"cmp"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// ViewEntry is a resolved row of a MergedView.
// Key.Namespace is the namespace whose table supplied the id.
type ViewEntry struct {
	Key ResourceKey
	ID  int
}

// Shadow records an inherited entry hidden by a higher precedence table.
type Shadow struct {
	Symbol Symbol
	Winner InternedString
	Hidden InternedString
}

// MergedView is the symbol table visible from one namespace: its own table plus
// every reachable dependency table. Own entries shadow inherited ones and among
// dependencies the first in precedence order wins.
type MergedView struct {
	namespace InternedString
	order     []InternedString
	tables    map[InternedString]*ResourceTable
	merged    map[Symbol]ViewEntry
	shadowed  []Shadow
}

// NewMergedView merges own with deps. deps must already be flattened into
// precedence order; a table listed twice keeps its first position.
func NewMergedView(own *ResourceTable, deps []*ResourceTable) (*MergedView, error) {
	v := &MergedView{
		namespace: own.namespace,
		tables:    make(map[InternedString]*ResourceTable, len(deps)+1),
		merged:    make(map[Symbol]ViewEntry, own.Len()),
	}

	v.add(own)
	for _, dep := range deps {
		if dep.namespace == own.namespace {
			err := zerr.With(ErrCyclicDependency, "namespace", own.Namespace())
			return nil, zerr.With(err, "cycle", own.Namespace()+" -> "+own.Namespace())
		}
		if _, seen := v.tables[dep.namespace]; seen {
			continue
		}
		v.add(dep)
	}
	return v, nil
}

func (v *MergedView) add(t *ResourceTable) {
	v.order = append(v.order, t.namespace)
	v.tables[t.namespace] = t
	for _, e := range t.order {
		sym := NewSymbol(e.Type, e.Name)
		if winner, exists := v.merged[sym]; exists {
			v.shadowed = append(v.shadowed, Shadow{
				Symbol: sym,
				Winner: winner.Key.Namespace,
				Hidden: t.namespace,
			})
			continue
		}
		v.merged[sym] = ViewEntry{
			Key: ResourceKey{Namespace: t.namespace, Type: e.Type, Name: sym.Name},
			ID:  e.ID,
		}
	}
}

// Namespace returns the namespace the view was built for.
func (v *MergedView) Namespace() string {
	return v.namespace.String()
}

// Lookup returns the winning entry for (type, name).
func (v *MergedView) Lookup(t ResourceType, name string) (ViewEntry, bool) {
	e, ok := v.merged[NewSymbol(t, name)]
	return e, ok
}

// Table returns the own table of a namespace reachable from the view.
func (v *MergedView) Table(namespace string) (*ResourceTable, bool) {
	t, ok := v.tables[NewInternedString(namespace)]
	return t, ok
}

// Namespaces returns the view's namespace followed by its dependencies in precedence order.
func (v *MergedView) Namespaces() []string {
	out := make([]string, len(v.order))
	for i, ns := range v.order {
		out[i] = ns.String()
	}
	return out
}

// Len returns the number of visible symbols.
func (v *MergedView) Len() int {
	return len(v.merged)
}

// Entries yields the visible rows ordered by type, then name.
func (v *MergedView) Entries() iter.Seq[ViewEntry] {
	rows := make([]ViewEntry, 0, len(v.merged))
	for _, e := range v.merged {
		rows = append(rows, e)
	}
	slices.SortFunc(rows, func(a, b ViewEntry) int {
		if c := cmp.Compare(a.Key.Type, b.Key.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.Name.String(), b.Key.Name.String())
	})
	return slices.Values(rows)
}

// Shadowed returns the inherited entries hidden by a higher precedence table.
func (v *MergedView) Shadowed() []Shadow {
	return slices.Clone(v.shadowed)
}
