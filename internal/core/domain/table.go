package domain

import (
	"cmp"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// DefaultPackageID is the id high byte used for generated application tables.
const DefaultPackageID uint8 = 0x7f

const (
	maxTypeIndex  = 0xff
	maxEntryIndex = 0xffff
)

// Entry is one (type, name) -> id row of a ResourceTable.
type Entry struct {
	Type ResourceType `json:"type" msgpack:"t"`
	Name string       `json:"name" msgpack:"n"`
	ID   int          `json:"id" msgpack:"i"`
}

// ResourceTable maps (type, name) to a stable non-negative id for one namespace.
// It is immutable once constructed and safe for concurrent reads.
type ResourceTable struct {
	namespace InternedString
	ids       map[Symbol]int
	order     []Entry
}

// NewResourceTable creates a table for namespace from explicit entries.
// Two entries with the same (type, name) fail with ErrDuplicateDefinition.
func NewResourceTable(namespace string, entries []Entry) (*ResourceTable, error) {
	t := &ResourceTable{
		namespace: NewInternedString(namespace),
		ids:       make(map[Symbol]int, len(entries)),
		order:     make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		if !e.Type.Valid() {
			err := zerr.With(ErrUnknownResourceType, "namespace", namespace)
			return nil, zerr.With(err, "name", e.Name)
		}
		if !ValidResourceName(e.Name) {
			return nil, withKey(ErrInvalidResourceName, namespace, e.Type, e.Name)
		}
		if e.ID < 0 {
			err := withKey(ErrInvalidResourceID, namespace, e.Type, e.Name)
			return nil, zerr.With(err, "id", e.ID)
		}
		sym := NewSymbol(e.Type, e.Name)
		if _, exists := t.ids[sym]; exists {
			return nil, withKey(ErrDuplicateDefinition, namespace, e.Type, e.Name)
		}
		t.ids[sym] = e.ID
		t.order = append(t.order, e)
	}

	slices.SortFunc(t.order, compareEntries)
	return t, nil
}

// GenerateTable assigns ids to definitions the way aapt lays out a package:
// 0xPPTTEEEE, where PP is packageID, TT the 1-based type index (attr first,
// then canonical type order of the types present) and EEEE the entry index in
// name order. The result is deterministic for a given set of definitions.
func GenerateTable(namespace string, packageID uint8, defs []Definition) (*ResourceTable, error) {
	byType := make(map[ResourceType][]string)
	seen := make(map[Symbol]struct{}, len(defs))
	for _, d := range defs {
		if !d.Type.Valid() {
			err := zerr.With(ErrUnknownResourceType, "namespace", namespace)
			return nil, zerr.With(err, "name", d.Name)
		}
		if !ValidResourceName(d.Name) {
			err := withKey(ErrInvalidResourceName, namespace, d.Type, d.Name)
			if d.Source != "" {
				err = zerr.With(err, "source", d.Source)
			}
			return nil, err
		}
		sym := NewSymbol(d.Type, d.Name)
		if _, exists := seen[sym]; exists {
			err := withKey(ErrDuplicateDefinition, namespace, d.Type, d.Name)
			if d.Source != "" {
				err = zerr.With(err, "source", d.Source)
			}
			return nil, err
		}
		seen[sym] = struct{}{}
		byType[d.Type] = append(byType[d.Type], d.Name)
	}

	types := make([]ResourceType, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b ResourceType) int {
		// attr always takes type index 1.
		if a == TypeAttr {
			return -1
		}
		if b == TypeAttr {
			return 1
		}
		return cmp.Compare(a, b)
	})
	if len(types) > maxTypeIndex {
		return nil, zerr.With(ErrTooManyResources, "namespace", namespace)
	}

	entries := make([]Entry, 0, len(defs))
	for ti, t := range types {
		names := byType[t]
		slices.Sort(names)
		if len(names) > maxEntryIndex+1 {
			err := zerr.With(ErrTooManyResources, "namespace", namespace)
			return nil, zerr.With(err, "type", t.String())
		}
		for ei, name := range names {
			entries = append(entries, Entry{
				Type: t,
				Name: name,
				ID:   int(packageID)<<24 | (ti+1)<<16 | ei,
			})
		}
	}

	return NewResourceTable(namespace, entries)
}

// Namespace returns the namespace the table belongs to.
func (t *ResourceTable) Namespace() string {
	return t.namespace.String()
}

// Lookup returns the id of (type, name) in this table only.
func (t *ResourceTable) Lookup(typ ResourceType, name string) (int, bool) {
	id, ok := t.ids[NewSymbol(typ, name)]
	return id, ok
}

// Len returns the number of entries.
func (t *ResourceTable) Len() int {
	return len(t.order)
}

// Entries yields the rows ordered by type, then name.
func (t *ResourceTable) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.order {
			if !yield(e) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the rows, suitable for serialization.
func (t *ResourceTable) Snapshot() TableSnapshot {
	return TableSnapshot{
		Namespace: t.Namespace(),
		Entries:   slices.Clone(t.order),
	}
}

// TableSnapshot is the serializable form of a ResourceTable.
type TableSnapshot struct {
	Namespace string  `json:"namespace" msgpack:"ns"`
	Entries   []Entry `json:"entries" msgpack:"e"`
}

// Table rebuilds the immutable table from a snapshot.
func (s TableSnapshot) Table() (*ResourceTable, error) {
	return NewResourceTable(s.Namespace, s.Entries)
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}
