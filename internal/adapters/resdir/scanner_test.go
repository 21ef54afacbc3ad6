package resdir_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rsym/internal/adapters/fs"
	"go.trai.ch/rsym/internal/adapters/resdir"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeRes(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

type key struct {
	typ  domain.ResourceType
	name string
}

func keys(defs []domain.Definition) map[key]string {
	out := make(map[key]string, len(defs))
	for _, d := range defs {
		out[key{d.Type, d.Name}] = d.Source
	}
	return out
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeRes(t, root, map[string]string{
		"layout/main.xml": `<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android">
  <TextView android:id="@+id/title"/>
  <Button android:id="@+id/ok" android:layout_below="@id/title"/>
</LinearLayout>`,
		"layout-land/main.xml":     `<FrameLayout/>`,
		"drawable-hdpi/icon.9.png": "png",
		"raw/intro.mp3":            "mp3",
		"menu/actions.xml":         `<menu><item android:id="@+id/refresh" xmlns:android="x"/></menu>`,
		"values/strings.xml": `<?xml version="1.0" encoding="utf-8"?>
<resources>
  <string name="app_name">Smart</string>
  <string-array name="planets"><item>Mercury</item></string-array>
  <plurals name="songs"><item quantity="one">song</item></plurals>
  <item type="id" name="shared"/>
  <style name="Theme.App"><item name="android:colorAccent">#fff</item></style>
  <declare-styleable name="Banner">
    <attr name="tint" format="color"/>
    <attr name="android:text"/>
  </declare-styleable>
  <dimen name="margin">4dp</dimen>
</resources>`,
		"values-de/strings.xml": `<resources><string name="app_name">Klug</string></resources>`,
		"values/notes.txt":      "not xml",
		"unknown/thing.xml":     `<thing/>`,
		".hidden/secret.xml":    `<resources><string name="secret">x</string></resources>`,
	})

	scanner := resdir.NewScanner(fs.NewWalker())
	defs, err := scanner.Scan(root)
	require.NoError(t, err)

	got := keys(defs)
	assert.Len(t, defs, len(got), "definitions must be unique per (type, name)")

	want := []key{
		{domain.TypeLayout, "main"},
		{domain.TypeID, "title"},
		{domain.TypeID, "ok"},
		{domain.TypeDrawable, "icon"},
		{domain.TypeRaw, "intro"},
		{domain.TypeMenu, "actions"},
		{domain.TypeID, "refresh"},
		{domain.TypeString, "app_name"},
		{domain.TypeArray, "planets"},
		{domain.TypePlurals, "songs"},
		{domain.TypeID, "shared"},
		{domain.TypeStyle, "Theme_App"},
		{domain.TypeStyleable, "Banner"},
		{domain.TypeAttr, "tint"},
		{domain.TypeDimen, "margin"},
	}
	for _, k := range want {
		assert.Contains(t, got, k)
	}
	assert.Len(t, got, len(want))

	// The unqualified directory sorts first and wins the source.
	assert.Equal(t, filepath.Join(root, "layout", "main.xml"), got[key{domain.TypeLayout, "main"}])
	assert.Equal(t, filepath.Join(root, "values", "strings.xml"), got[key{domain.TypeString, "app_name"}])
}

func TestScanner_Scan_QualifiersCollapse(t *testing.T) {
	root := t.TempDir()
	writeRes(t, root, map[string]string{
		"layout/main.xml":       `<View/>`,
		"layout-land/main.xml":  `<View/>`,
		"values/strings.xml":    `<resources><string name="title">Title</string><item type="id" name="anchor"/></resources>`,
		"values-de/strings.xml": `<resources><string name="title">Titel</string></resources>`,
		"values/ids.xml":        `<resources><item type="id" name="anchor"/></resources>`,
	})

	defs, err := resdir.NewScanner(fs.NewWalker()).Scan(root)
	require.NoError(t, err)

	got := keys(defs)
	assert.Len(t, defs, 3)
	assert.Equal(t, filepath.Join(root, "layout", "main.xml"), got[key{domain.TypeLayout, "main"}])
	assert.Equal(t, filepath.Join(root, "values", "strings.xml"), got[key{domain.TypeString, "title"}])
	assert.Contains(t, got, key{domain.TypeID, "anchor"})
}

func TestScanner_Scan_DuplicateDefinition(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		typ       string
		resource  string
		first     string
		duplicate string
	}{
		{
			name: "values files",
			files: map[string]string{
				"values/a.xml": `<resources><string name="app_name">Smart</string></resources>`,
				"values/b.xml": `<resources><string name="app_name">Other</string></resources>`,
			},
			typ:       "string",
			resource:  "app_name",
			first:     "values/a.xml",
			duplicate: "values/b.xml",
		},
		{
			name: "same file",
			files: map[string]string{
				"values-de/strings.xml": `<resources><dimen name="margin">4dp</dimen><dimen name="margin">8dp</dimen></resources>`,
			},
			typ:       "dimen",
			resource:  "margin",
			first:     "values-de/strings.xml",
			duplicate: "values-de/strings.xml",
		},
		{
			name: "file extensions",
			files: map[string]string{
				"drawable/icon.png": "png",
				"drawable/icon.xml": `<shape/>`,
			},
			typ:       "drawable",
			resource:  "icon",
			first:     "drawable/icon.png",
			duplicate: "drawable/icon.xml",
		},
		{
			name: "file and values element",
			files: map[string]string{
				"color/accent.xml":  `<selector/>`,
				"values/colors.xml": `<resources><color name="accent">#fff</color></resources>`,
			},
			typ:       "color",
			resource:  "accent",
			first:     "color/accent.xml",
			duplicate: "values/colors.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeRes(t, root, tt.files)

			_, err := resdir.NewScanner(fs.NewWalker()).Scan(root)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrDuplicateDefinition), "got %v", err)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			meta := zErr.Metadata()
			assert.Equal(t, tt.typ, meta["type"])
			assert.Equal(t, tt.resource, meta["name"])
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.first)), meta["first_occurrence"])
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.duplicate)), meta["duplicate_at"])
		})
	}
}

func TestScanner_Scan_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeRes(t, root, map[string]string{
		"layout/b.xml":       `<View/>`,
		"layout/a.xml":       `<View/>`,
		"values/strings.xml": `<resources><string name="z"/><string name="y"/></resources>`,
	})

	scanner := resdir.NewScanner(fs.NewWalker())
	first, err := scanner.Scan(root)
	require.NoError(t, err)
	second, err := scanner.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScanner_Scan_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "res")
		_, err := resdir.NewScanner(fs.NewWalker()).Scan(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrResourceScanFailed.Error())

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, dir, zErr.Metadata()["path"])
	})

	t.Run("malformed xml", func(t *testing.T) {
		root := t.TempDir()
		writeRes(t, root, map[string]string{
			"values/strings.xml": `<resources><string name="a">`,
		})
		_, err := resdir.NewScanner(fs.NewWalker()).Scan(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrResourceScanFailed.Error())

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, filepath.Join(root, "values", "strings.xml"), zErr.Metadata()["path"])
	})

	t.Run("unreadable directory", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("directory permissions are not enforced for root")
		}
		root := t.TempDir()
		writeRes(t, root, map[string]string{
			"layout/main.xml":    `<View/>`,
			"values/strings.xml": `<resources><string name="title">Title</string></resources>`,
		})
		locked := filepath.Join(root, "values")
		require.NoError(t, os.Chmod(locked, 0))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

		defs, err := resdir.NewScanner(fs.NewWalker()).Scan(root)
		require.Error(t, err)
		assert.Nil(t, defs)
		assert.Contains(t, err.Error(), domain.ErrResourceScanFailed.Error())

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, root, zErr.Metadata()["root"])

		var walkErr *zerr.Error
		require.ErrorAs(t, errors.Unwrap(err), &walkErr)
		assert.Equal(t, locked, walkErr.Metadata()["path"])
	})
}
