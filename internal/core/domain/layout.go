package domain

import (
	"os"
	"path/filepath"
)

const (
	// NamespaceFileName is the per-namespace config file.
	NamespaceFileName = "rsym.yaml"
	// WorkFileName is the workspace config file.
	WorkFileName = "rsym.work.yaml"
	// StateDirName is the directory holding rsym's on-disk state at the workspace root.
	StateDirName = ".rsym"
	// StoreDirName is the table cache directory inside StateDirName.
	StoreDirName = "store"
	// SymbolsFileName is the conventional name of an aapt text symbol table.
	SymbolsFileName = "R.txt"
	// TableFormat versions cached tables. Bump it whenever the table layout or
	// the cache key input changes.
	TableFormat = "rsym.table.v1"

	// DirPerm is used for directories rsym creates.
	DirPerm os.FileMode = 0o750
	// FilePerm is used for files rsym writes.
	FilePerm os.FileMode = 0o644
)

// StatePath returns the state directory of the workspace rooted at root.
func StatePath(root string) string {
	return filepath.Join(root, StateDirName)
}

// StorePath returns the table cache directory of the workspace rooted at root.
func StorePath(root string) string {
	return filepath.Join(root, StateDirName, StoreDirName)
}
