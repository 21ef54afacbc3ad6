package resolver

import (
	"strings"

	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

// Reference is a parsed resource reference.
// An empty Namespace means the reference is resolved against the merged view.
type Reference struct {
	Namespace string
	Type      domain.ResourceType
	Name      string
}

// Qualified reports whether the reference names its source namespace.
func (r Reference) Qualified() bool {
	return r.Namespace != ""
}

// String returns the reference in R.type.name or package.R.type.name form.
func (r Reference) String() string {
	s := "R." + r.Type.String() + "." + r.Name
	if r.Qualified() {
		return r.Namespace + "." + s
	}
	return s
}

// ParseReference parses a code reference (R.layout.main, org.smart.test.foo.R.layout.main)
// or a resource XML reference (@layout/main, @org.smart.test.foo:layout/main).
func ParseReference(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "@") {
		return parseXMLReference(ref)
	}
	return parseCodeReference(ref)
}

func parseCodeReference(ref string) (Reference, error) {
	parts := strings.Split(ref, ".")
	n := len(parts)
	if n < 3 || parts[n-3] != "R" {
		return Reference{}, zerr.With(domain.ErrInvalidReference, "reference", ref)
	}
	namespace := strings.Join(parts[:n-3], ".")
	return newReference(ref, namespace, parts[n-2], parts[n-1])
}

func parseXMLReference(ref string) (Reference, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(ref, "@"), "+")
	namespace := ""
	if pkg, rest, ok := strings.Cut(body, ":"); ok {
		namespace, body = pkg, rest
	}
	typ, name, ok := strings.Cut(body, "/")
	if !ok {
		return Reference{}, zerr.With(domain.ErrInvalidReference, "reference", ref)
	}
	return newReference(ref, namespace, typ, name)
}

func newReference(ref, namespace, typ, name string) (Reference, error) {
	if namespace != "" {
		if err := domain.ValidateNamespaceName(namespace); err != nil {
			return Reference{}, zerr.With(domain.ErrInvalidReference, "reference", ref)
		}
	}
	if !domain.ValidResourceName(name) {
		return Reference{}, zerr.With(domain.ErrInvalidReference, "reference", ref)
	}
	t, err := domain.ParseResourceType(typ)
	if err != nil {
		return Reference{}, zerr.With(err, "reference", ref)
	}
	return Reference{Namespace: namespace, Type: t, Name: name}, nil
}
