// Package fs provides file system adapters for walking and hashing namespace sources.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	domain.StateDirName: true,
}

// IsSkippedDir reports whether a directory with the given base name is never walked or watched.
func IsSkippedDir(name string) bool {
	return skipDirs[name]
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root in lexical order, skipping
// VCS and state directories and any entry whose base name matches one of ignores.
// Yielded paths include root. A failure to read root or any directory below it
// is yielded once as an error and ends the walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", path)
			}

			if path != root {
				if skip, action := w.skip(d, ignores); skip {
					return action
				}
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// WalkDirs yields root and every directory below it, with the same skip rules
// as WalkFiles. Unreadable directories are skipped rather than aborting the walk.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Skip problematic directories
			}
			if !d.IsDir() {
				return nil
			}
			if path != root {
				if skip, action := w.skip(d, ignores); skip {
					return action
				}
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// skip reports whether d should be skipped and the walk action to return.
func (w *Walker) skip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && skipDirs[name] {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
