package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// ResourceType is the kind of a resource, the middle segment of R.type.name.
type ResourceType uint8

// Resource types known to the resolver. The order is the canonical type order
// used for id allocation and rendering.
const (
	TypeUnknown ResourceType = iota
	TypeAnim
	TypeAnimator
	TypeArray
	TypeAttr
	TypeBool
	TypeColor
	TypeDimen
	TypeDrawable
	TypeFont
	TypeFraction
	TypeID
	TypeInteger
	TypeInterpolator
	TypeLayout
	TypeMenu
	TypeMipmap
	TypePlurals
	TypeRaw
	TypeString
	TypeStyle
	TypeStyleable
	TypeTransition
	TypeXML
)

var resourceTypeNames = [...]string{
	TypeUnknown:      "",
	TypeAnim:         "anim",
	TypeAnimator:     "animator",
	TypeArray:        "array",
	TypeAttr:         "attr",
	TypeBool:         "bool",
	TypeColor:        "color",
	TypeDimen:        "dimen",
	TypeDrawable:     "drawable",
	TypeFont:         "font",
	TypeFraction:     "fraction",
	TypeID:           "id",
	TypeInteger:      "integer",
	TypeInterpolator: "interpolator",
	TypeLayout:       "layout",
	TypeMenu:         "menu",
	TypeMipmap:       "mipmap",
	TypePlurals:      "plurals",
	TypeRaw:          "raw",
	TypeString:       "string",
	TypeStyle:        "style",
	TypeStyleable:    "styleable",
	TypeTransition:   "transition",
	TypeXML:          "xml",
}

var resourceTypesByName = func() map[string]ResourceType {
	types := ResourceTypes()
	m := make(map[string]ResourceType, len(types))
	for _, t := range types {
		m[t.String()] = t
	}
	return m
}()

// ResourceTypes returns every known resource type in canonical order.
func ResourceTypes() []ResourceType {
	types := make([]ResourceType, 0, len(resourceTypeNames)-1)
	for i := 1; i < len(resourceTypeNames); i++ {
		types = append(types, ResourceType(i))
	}
	return types
}

// ValidResourceName reports whether name can be the last segment of R.type.name:
// a Java identifier without '$'.
func ValidResourceName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// FlattenResourceName returns the R field name of a declared resource name.
// aapt turns the dots of names such as Theme.App into underscores.
func FlattenResourceName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// ParseResourceType returns the ResourceType named s.
func ParseResourceType(s string) (ResourceType, error) {
	t, ok := resourceTypesByName[s]
	if !ok {
		return TypeUnknown, zerr.With(ErrUnknownResourceType, "type", s)
	}
	return t, nil
}

// String returns the type name as it appears in R.type.name.
func (t ResourceType) String() string {
	if int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return fmt.Sprintf("ResourceType(%d)", uint8(t))
}

// Valid reports whether t is a known, non-zero type.
func (t ResourceType) Valid() bool {
	return t > TypeUnknown && int(t) < len(resourceTypeNames)
}

// MarshalText implements encoding.TextMarshaler.
func (t ResourceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, zerr.With(ErrUnknownResourceType, "type", t.String())
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Symbol identifies a resource within a single namespace.
type Symbol struct {
	Type ResourceType
	Name InternedString
}

// NewSymbol creates a Symbol from a type and a plain name.
func NewSymbol(t ResourceType, name string) Symbol {
	return Symbol{Type: t, Name: NewInternedString(name)}
}

// String returns the symbol as type.name.
func (s Symbol) String() string {
	return s.Type.String() + "." + s.Name.String()
}

// ResourceKey uniquely identifies one resource within one namespace.
type ResourceKey struct {
	Namespace InternedString
	Type      ResourceType
	Name      InternedString
}

// NewResourceKey creates a ResourceKey.
func NewResourceKey(namespace string, t ResourceType, name string) ResourceKey {
	return ResourceKey{
		Namespace: NewInternedString(namespace),
		Type:      t,
		Name:      NewInternedString(name),
	}
}

// Symbol returns the namespace-local part of the key.
func (k ResourceKey) Symbol() Symbol {
	return Symbol{Type: k.Type, Name: k.Name}
}

// String returns the key in package:type/name form.
func (k ResourceKey) String() string {
	return k.Namespace.String() + ":" + k.Type.String() + "/" + k.Name.String()
}

// Definition is one declared resource of a namespace before ids are assigned.
type Definition struct {
	Type ResourceType
	Name string
	// Source is the file the definition came from, used in diagnostics only.
	Source string
}

// withKey attaches the (namespace, type, name) metadata every resolution error carries.
func withKey(err error, namespace string, t ResourceType, name string) error {
	err = zerr.With(err, "namespace", namespace)
	err = zerr.With(err, "type", t.String())
	return zerr.With(err, "name", name)
}
