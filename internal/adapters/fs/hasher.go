package fs

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes the cache key of a namespace's generated table.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashNamespace hashes everything that determines the namespace's table: its
// name, kind, package id and the sorted definitions or symbols. Dependencies
// and source paths are left out, they do not change the table.
func (h *Hasher) HashNamespace(ns *domain.Namespace) (string, error) {
	if ns == nil {
		return "", zerr.New("cannot hash nil namespace")
	}

	hasher := xxhash.New()
	writeString(hasher, domain.TableFormat)
	writeString(hasher, ns.Name.String())
	writeString(hasher, string(ns.Kind))
	_, _ = hasher.Write([]byte{ns.PackageID, 0})

	h.hashDefinitions(ns.Definitions, hasher)
	if err := h.hashSymbols(ns.Symbols, hasher); err != nil {
		return "", zerr.With(err, "namespace", ns.Name.String())
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashDefinitions hashes (type, name) pairs in canonical order so that
// declaration order does not change the key.
func (h *Hasher) hashDefinitions(defs []domain.Definition, hasher *xxhash.Digest) {
	keys := make([]domain.Definition, len(defs))
	copy(keys, defs)
	slices.SortFunc(keys, func(a, b domain.Definition) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for _, d := range keys {
		writeString(hasher, d.Type.String())
		writeString(hasher, d.Name)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func (h *Hasher) hashSymbols(entries []domain.Entry, hasher *xxhash.Digest) error {
	sorted := make([]domain.Entry, len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, func(a, b domain.Entry) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for _, e := range sorted {
		writeString(hasher, e.Type.String())
		writeString(hasher, e.Name)
		if err := binary.Write(hasher, binary.LittleEndian, int64(e.ID)); err != nil {
			return zerr.Wrap(err, "failed to write id to digest")
		}
	}
	_, _ = hasher.Write([]byte{0})
	return nil
}

func writeString(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}
