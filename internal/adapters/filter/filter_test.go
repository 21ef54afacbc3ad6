package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rsym/internal/adapters/filter"
	"go.trai.ch/rsym/internal/core/domain"
)

func buildView(t *testing.T) *domain.MergedView {
	t.Helper()
	own, err := domain.GenerateTable("app", domain.DefaultPackageID, []domain.Definition{
		{Type: domain.TypeLayout, Name: "main"},
		{Type: domain.TypeString, Name: "title"},
	})
	require.NoError(t, err)
	lib, err := domain.GenerateTable("lib", 0x7e, []domain.Definition{
		{Type: domain.TypeString, Name: "title"},
		{Type: domain.TypeDrawable, Name: "icon"},
	})
	require.NoError(t, err)

	view, err := domain.NewMergedView(own, []*domain.ResourceTable{lib})
	require.NoError(t, err)
	return view
}

func keep(t *testing.T, expression string, view *domain.MergedView) []string {
	t.Helper()
	pred, err := filter.NewCompiler().Compile(expression)
	require.NoError(t, err)

	var names []string
	for row := range view.Entries() {
		ok, err := pred(view, row)
		require.NoError(t, err)
		if ok {
			names = append(names, row.Key.Type.String()+"."+row.Key.Name.String())
		}
	}
	return names
}

func TestCompiler_Compile(t *testing.T) {
	view := buildView(t)

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "by type", expression: `type == "layout"`, want: []string{"layout.main"}},
		{name: "local rows", expression: `local`, want: []string{"layout.main", "string.title"}},
		{name: "inherited rows", expression: `!local`, want: []string{"drawable.icon"}},
		{name: "origin", expression: `origin == "lib"`, want: []string{"drawable.icon"}},
		{name: "shadowing rows", expression: `shadows`, want: []string{"string.title"}},
		{name: "id range", expression: `id >= 2130706432`, want: []string{"layout.main", "string.title"}},
		{name: "view namespace", expression: `namespace == "app" && name startsWith "ma"`, want: []string{"layout.main"}},
		{name: "nothing", expression: `false`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keep(t, tt.expression, view))
		})
	}
}

func TestCompiler_Compile_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: "  "},
		{name: "syntax", expression: `type ==`},
		{name: "unknown field", expression: `colour == "red"`},
		{name: "not boolean", expression: `id + 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filter.NewCompiler().Compile(tt.expression)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrInvalidFilter), "got %v", err)
		})
	}
}
