package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// NamespaceKind is the origin of a namespace's table.
type NamespaceKind string

const (
	// KindProject is an application project. Its table is generated from its definitions.
	KindProject NamespaceKind = "project"
	// KindLibrary is a library project. Its table is generated from its definitions.
	KindLibrary NamespaceKind = "library"
	// KindArchive is a prebuilt archive shipping a fixed symbol table.
	KindArchive NamespaceKind = "archive"
)

// ParseNamespaceKind parses a kind name. The empty string means project.
func ParseNamespaceKind(s string) (NamespaceKind, error) {
	switch NamespaceKind(s) {
	case "", KindProject:
		return KindProject, nil
	case KindLibrary, KindArchive:
		return NamespaceKind(s), nil
	default:
		return "", zerr.With(ErrInvalidNamespaceKind, "kind", s)
	}
}

var namespaceNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateNamespaceName checks that name is a dotted package identifier.
func ValidateNamespaceName(name string) error {
	if !namespaceNamePattern.MatchString(name) {
		return zerr.With(ErrInvalidNamespaceName, "namespace", name)
	}
	return nil
}

// Namespace is one node of the workspace: a project, library or archive.
type Namespace struct {
	Name         InternedString
	Kind         NamespaceKind
	PackageID    uint8
	Dependencies []InternedString
	// Definitions are the declared resources of a project or library.
	Definitions []Definition
	// Symbols is the fixed table of an archive.
	Symbols []Entry
	// Sources lists the files the namespace was loaded from, for hashing and watching.
	Sources []string
	// Dir is the directory holding the namespace file.
	Dir string
}

// Prebuilt reports whether the namespace ships a fixed table instead of definitions.
func (n *Namespace) Prebuilt() bool {
	return n.Kind == KindArchive
}
