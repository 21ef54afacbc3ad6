package cas_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rsym/internal/adapters/cas"
	"go.trai.ch/rsym/internal/core/domain"
)

func sampleTable(t *testing.T) *domain.ResourceTable {
	t.Helper()
	table, err := domain.GenerateTable("org.smart.test.foo", domain.DefaultPackageID, []domain.Definition{
		{Type: domain.TypeLayout, Name: "main"},
		{Type: domain.TypeString, Name: "app_name"},
		{Type: domain.TypeAttr, Name: "tint"},
	})
	require.NoError(t, err)
	return table
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	table := sampleTable(t)

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Put(root, "0123abcd", table))

		_, err := os.Stat(filepath.Join(domain.StorePath(root), "0123abcd.msgpack"))
		require.NoError(t, err)

		got, err := store.Get(root, "0123abcd")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, table.Namespace(), got.Namespace())
		assert.Equal(t, slices.Collect(table.Entries()), slices.Collect(got.Entries()))
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get(root, "ffff")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(domain.StorePath(root), domain.DirPerm))
	path := filepath.Join(domain.StorePath(root), "abc.msgpack")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack"), domain.FilePerm))

	got, err := store.Get(root, "abc")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, domain.IsKind(err, domain.ErrStoreUnmarshalFailed))
}

func TestStore_UnsafeKeyIsHashed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	require.NoError(t, store.Put(root, "../escape", sampleTable(t)))

	entries, err := os.ReadDir(domain.StorePath(root))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Name(), 64+len(".msgpack"))

	got, err := store.Get(root, "../escape")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestStore_PutCreateFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// A file where the state directory should be makes MkdirAll fail.
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.StateDirName), nil, domain.FilePerm))

	store, err := cas.NewStore()
	require.NoError(t, err)

	err = store.Put(root, "abc", sampleTable(t))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrStoreCreateFailed))
}
