// Package cas implements the content addressed table cache.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

const fileExt = ".msgpack"

// Store implements ports.TableCache with one msgpack file per definition hash.
// Entries are never updated in place: a changed definition set hashes to a new key.
type Store struct{}

// NewStore creates a new table store. The directory is passed per call as the workspace root.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the table stored under key. Returns nil, nil if not found.
func (s *Store) Get(root, key string) (*domain.ResourceTable, error) {
	filename := s.getFilename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	var snap domain.TableSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}

	table, err := snap.Table()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}
	return table, nil
}

// Put stores the table under key.
func (s *Store) Put(root, key string, table *domain.ResourceTable) error {
	data, err := msgpack.Marshal(table.Snapshot())
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, key)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	// Write to a sibling temp file and rename so readers never see a partial entry.
	tmp, err := os.CreateTemp(dir, "tmp-*"+fileExt)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	return nil
}

// getFilename uses the key as the file name when it is a plain hex digest
// and hashes it otherwise, so keys can never escape the store directory.
func (s *Store) getFilename(root, key string) string {
	name := key
	if !isHex(key) {
		sum := sha256.Sum256([]byte(key))
		name = hex.EncodeToString(sum[:])
	}
	return filepath.Join(domain.StorePath(root), name+fileExt)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
