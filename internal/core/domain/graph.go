// Package domain contains the resource model: tables, namespaces and merged views.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

const (
	unvisited = iota
	visiting
	done
)

// NamespaceGraph is the directed dependency graph between namespaces.
type NamespaceGraph struct {
	namespaces map[InternedString]*Namespace
	declared   []InternedString
	buildOrder []InternedString
	root       string
}

// NewNamespaceGraph creates a new empty NamespaceGraph.
func NewNamespaceGraph() *NamespaceGraph {
	return &NamespaceGraph{
		namespaces: make(map[InternedString]*Namespace),
	}
}

// AddNamespace adds a namespace to the graph.
// It returns an error if the namespace is unnamed or its name is already taken.
func (g *NamespaceGraph) AddNamespace(ns *Namespace) error {
	if ns.Name.IsZero() {
		return ErrMissingNamespaceName
	}
	if _, exists := g.namespaces[ns.Name]; exists {
		return zerr.With(ErrDuplicateNamespace, "namespace", ns.Name.String())
	}
	g.namespaces[ns.Name] = ns
	g.declared = append(g.declared, ns.Name)
	g.buildOrder = nil
	return nil
}

// Get returns the namespace called name.
func (g *NamespaceGraph) Get(name string) (*Namespace, bool) {
	ns, ok := g.namespaces[NewInternedString(name)]
	return ns, ok
}

// Len returns the number of namespaces.
func (g *NamespaceGraph) Len() int {
	return len(g.declared)
}

// Namespaces yields namespaces in declaration order.
func (g *NamespaceGraph) Namespaces() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		for _, name := range g.declared {
			if !yield(g.namespaces[name]) {
				return
			}
		}
	}
}

// Root returns the workspace root directory.
func (g *NamespaceGraph) Root() string {
	return g.root
}

// SetRoot sets the workspace root directory.
func (g *NamespaceGraph) SetRoot(root string) {
	g.root = root
}

// Validate checks for edges to undeclared namespaces and for cycles.
// It populates the build order, dependencies first, if successful.
func (g *NamespaceGraph) Validate() error {
	order := make([]InternedString, 0, len(g.declared))
	state := make(map[InternedString]int, len(g.declared))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		for _, dep := range g.namespaces[u].Dependencies {
			if _, exists := g.namespaces[dep]; !exists {
				err := zerr.With(ErrUnknownNamespace, "namespace", dep.String())
				return zerr.With(err, "required_by", u.String())
			}
			switch state[dep] {
			case visiting:
				return buildCycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		state[u] = done
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	// Declaration order keeps the build order stable across runs.
	for _, name := range g.declared {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	g.buildOrder = order
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	err := zerr.With(ErrCyclicDependency, "namespace", dep.String())
	return zerr.With(err, "cycle", cyclePath)
}

// Walk returns an iterator that yields namespaces in build order.
// It assumes Validate() has been called and returned nil.
func (g *NamespaceGraph) Walk() iter.Seq[*Namespace] {
	return func(yield func(*Namespace) bool) {
		for _, name := range g.buildOrder {
			if !yield(g.namespaces[name]) {
				return
			}
		}
	}
}

// Flatten returns every namespace reachable from name, excluding name itself,
// in depth-first pre-order over declared dependencies. A namespace reached twice
// keeps its first position. This is the precedence order among dependencies.
// It assumes Validate() has been called and returned nil.
func (g *NamespaceGraph) Flatten(name string) ([]*Namespace, error) {
	start := NewInternedString(name)
	if _, ok := g.namespaces[start]; !ok {
		return nil, zerr.With(ErrUnknownNamespace, "namespace", name)
	}

	seen := map[InternedString]bool{start: true}
	var out []*Namespace
	var visit func(u InternedString)
	visit = func(u InternedString) {
		for _, dep := range g.namespaces[u].Dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if ns, ok := g.namespaces[dep]; ok {
				out = append(out, ns)
				visit(dep)
			}
		}
	}
	visit(start)
	return out, nil
}
