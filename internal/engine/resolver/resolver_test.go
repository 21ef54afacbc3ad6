package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/engine/resolver"
	"go.trai.ch/zerr"
)

func table(t *testing.T, namespace string, entries ...domain.Entry) *domain.ResourceTable {
	t.Helper()
	tbl, err := domain.NewResourceTable(namespace, entries)
	require.NoError(t, err)
	return tbl
}

func entry(typ domain.ResourceType, name string, id int) domain.Entry {
	return domain.Entry{Type: typ, Name: name, ID: id}
}

func requireKind(t *testing.T, err, kind error) *zerr.Error {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, kind), "expected %v, got %v", kind, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	return zErr
}

func TestResolve_DependencyLayout(t *testing.T) {
	r := resolver.New()
	own := table(t, "org.smart.test")
	foo := table(t, "org.smart.test.foo", entry(domain.TypeLayout, "main", 7))

	view, err := r.Build(own, []*domain.ResourceTable{foo})
	require.NoError(t, err)

	id, err := r.ResolveUnqualified(view, domain.TypeLayout, "main")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	id, err = r.ResolveQualified(view, "org.smart.test.foo", domain.TypeLayout, "main")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestResolve_ArchiveDependency(t *testing.T) {
	r := resolver.New()
	own := table(t, "org.smart.test", entry(domain.TypeLayout, "main", 0x7f010000))
	archive := table(t, "org.smart.test.foo",
		entry(domain.TypeString, "app_name", 1),
		entry(domain.TypeInteger, "org_smart_test_foo_version", 2),
	)

	view, err := r.Build(own, []*domain.ResourceTable{archive})
	require.NoError(t, err)

	id, err := r.ResolveUnqualified(view, domain.TypeString, "app_name")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = r.ResolveUnqualified(view, domain.TypeInteger, "org_smart_test_foo_version")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestResolve_FirstDeclaredDependencyWins(t *testing.T) {
	r := resolver.New()
	own := table(t, "app")
	first := table(t, "first", entry(domain.TypeID, "shared", 100))
	second := table(t, "second", entry(domain.TypeID, "shared", 200))

	view, err := r.Build(own, []*domain.ResourceTable{first, second})
	require.NoError(t, err)

	id, err := r.ResolveUnqualified(view, domain.TypeID, "shared")
	require.NoError(t, err)
	assert.Equal(t, 100, id)

	// The loser stays addressable by qualification.
	id, err = r.ResolveQualified(view, "second", domain.TypeID, "shared")
	require.NoError(t, err)
	assert.Equal(t, 200, id)
}

func TestResolve_LocalShadowsDependency(t *testing.T) {
	r := resolver.New()
	lib := table(t, "lib", entry(domain.TypeString, "title", 0x7f020000))

	view, err := r.BuildFromDefinitions("app", []domain.Definition{
		{Type: domain.TypeString, Name: "title"},
	}, []*domain.ResourceTable{lib})
	require.NoError(t, err)

	local, err := r.ResolveUnqualified(view, domain.TypeString, "title")
	require.NoError(t, err)
	assert.Equal(t, 0x7f010000, local)

	inherited, err := r.ResolveQualified(view, "lib", domain.TypeString, "title")
	require.NoError(t, err)
	assert.Equal(t, 0x7f020000, inherited)

	own, err := r.ResolveQualified(view, "app", domain.TypeString, "title")
	require.NoError(t, err)
	assert.Equal(t, local, own)
}

func TestResolve_UniqueDependencyNamesInherited(t *testing.T) {
	r := resolver.New()
	own := table(t, "app", entry(domain.TypeLayout, "main", 1))
	a := table(t, "a", entry(domain.TypeColor, "accent", 10), entry(domain.TypeID, "dup", 11))
	b := table(t, "b", entry(domain.TypeDimen, "margin", 20), entry(domain.TypeID, "dup", 21))
	c := table(t, "c", entry(domain.TypeDrawable, "icon", 30))

	view, err := r.Build(own, []*domain.ResourceTable{a, b, c})
	require.NoError(t, err)

	for _, dep := range []*domain.ResourceTable{a, b, c} {
		for e := range dep.Entries() {
			if e.Name == "dup" {
				continue
			}
			id, err := r.ResolveUnqualified(view, e.Type, e.Name)
			require.NoError(t, err)
			assert.Equal(t, e.ID, id, "%s.%s", e.Type, e.Name)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := resolver.New()
	own := table(t, "app", entry(domain.TypeLayout, "main", 1))
	lib := table(t, "lib", entry(domain.TypeID, "x", 5))
	view, err := r.Build(own, []*domain.ResourceTable{lib})
	require.NoError(t, err)

	first, err := r.ResolveUnqualified(view, domain.TypeID, "x")
	require.NoError(t, err)
	second, err := r.ResolveUnqualified(view, domain.TypeID, "x")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := r.Build(own, []*domain.ResourceTable{lib})
	require.NoError(t, err)
	third, err := r.ResolveUnqualified(again, domain.TypeID, "x")
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestResolve_UnknownNamespace(t *testing.T) {
	r := resolver.New()
	view, err := r.Build(table(t, "app"), []*domain.ResourceTable{table(t, "lib")})
	require.NoError(t, err)

	_, err = r.ResolveQualified(view, "org.other", domain.TypeLayout, "main")
	zErr := requireKind(t, err, domain.ErrUnknownNamespace)
	meta := zErr.Metadata()
	assert.Equal(t, "org.other", meta["namespace"])
	assert.Equal(t, "layout", meta["type"])
	assert.Equal(t, "main", meta["name"])
	assert.Equal(t, "app", meta["view"])
}

func TestResolve_UnknownResource(t *testing.T) {
	r := resolver.New()
	view, err := r.Build(table(t, "app"), []*domain.ResourceTable{
		table(t, "lib", entry(domain.TypeLayout, "other", 1)),
	})
	require.NoError(t, err)

	_, err = r.ResolveUnqualified(view, domain.TypeLayout, "main")
	zErr := requireKind(t, err, domain.ErrUnknownResource)
	assert.Equal(t, "app", zErr.Metadata()["namespace"])
	assert.Equal(t, "layout", zErr.Metadata()["type"])
	assert.Equal(t, "main", zErr.Metadata()["name"])

	_, err = r.ResolveQualified(view, "lib", domain.TypeLayout, "main")
	zErr = requireKind(t, err, domain.ErrUnknownResource)
	assert.Equal(t, "lib", zErr.Metadata()["namespace"])
}

func TestResolve_QualifiedDoesNotInherit(t *testing.T) {
	r := resolver.New()
	base := table(t, "base", entry(domain.TypeString, "deep", 9))
	lib := table(t, "lib")
	view, err := r.Build(table(t, "app"), []*domain.ResourceTable{lib, base})
	require.NoError(t, err)

	_, err = r.ResolveQualified(view, "lib", domain.TypeString, "deep")
	requireKind(t, err, domain.ErrUnknownResource)

	id, err := r.ResolveQualified(view, "base", domain.TypeString, "deep")
	require.NoError(t, err)
	assert.Equal(t, 9, id)
}

func TestBuildFromDefinitions_Duplicate(t *testing.T) {
	r := resolver.New()
	_, err := r.BuildFromDefinitions("app", []domain.Definition{
		{Type: domain.TypeLayout, Name: "main"},
		{Type: domain.TypeLayout, Name: "main"},
	}, nil)
	zErr := requireKind(t, err, domain.ErrDuplicateDefinition)
	meta := zErr.Metadata()
	assert.Equal(t, "app", meta["namespace"])
	assert.Equal(t, "layout", meta["type"])
	assert.Equal(t, "main", meta["name"])
}

func TestResolveReference(t *testing.T) {
	r := resolver.New()
	own := table(t, "org.smart.test", entry(domain.TypeLayout, "main", 1))
	foo := table(t, "org.smart.test.foo", entry(domain.TypeLayout, "main", 7))
	view, err := r.Build(own, []*domain.ResourceTable{foo})
	require.NoError(t, err)

	tests := []struct {
		ref    string
		id     int
		origin string
	}{
		{"R.layout.main", 1, "org.smart.test"},
		{"org.smart.test.foo.R.layout.main", 7, "org.smart.test.foo"},
		{"@layout/main", 1, "org.smart.test"},
		{"@org.smart.test.foo:layout/main", 7, "org.smart.test.foo"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			res, err := r.ResolveReference(view, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
			assert.Equal(t, tt.origin, res.Origin)
		})
	}

	_, err = r.ResolveReference(view, "layout.main")
	requireKind(t, err, domain.ErrInvalidReference)
}
