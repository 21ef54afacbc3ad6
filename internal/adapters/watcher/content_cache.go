package watcher

import (
	"sync"
	"unique"

	"go.trai.ch/rsym/internal/core/ports"
)

// FileHasher hashes the content of a single file.
type FileHasher interface {
	ComputeFileHash(path string) (uint64, error)
}

// contentCache remembers the last content hash of every watched file so that
// writes which leave a file byte-identical, such as an editor saving an
// unmodified buffer, do not trigger a rebuild.
type contentCache struct {
	mu     sync.Mutex
	hasher FileHasher
	hashes map[unique.Handle[string]]uint64
}

func newContentCache(hasher FileHasher) *contentCache {
	return &contentCache{
		hasher: hasher,
		hashes: make(map[unique.Handle[string]]uint64),
	}
}

// record stores the current hash of path. Unreadable files are forgotten.
func (c *contentCache) record(path string) {
	sum, err := c.hasher.ComputeFileHash(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	key := unique.Make(path)
	if err != nil {
		delete(c.hashes, key)
		return
	}
	c.hashes[key] = sum
}

// changed reports whether event should be delivered. Only writes are filtered;
// every other operation invalidates or refreshes the stored hash and passes.
func (c *contentCache) changed(event ports.WatchEvent) bool {
	key := unique.Make(event.Path)

	switch event.Operation {
	case ports.OpRemove, ports.OpRename:
		c.mu.Lock()
		delete(c.hashes, key)
		c.mu.Unlock()
		return true
	case ports.OpCreate:
		c.record(event.Path)
		return true
	case ports.OpWrite:
	default:
		return true
	}

	sum, err := c.hasher.ComputeFileHash(event.Path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		delete(c.hashes, key)
		return true
	}
	prev, ok := c.hashes[key]
	c.hashes[key] = sum
	return !ok || prev != sum
}
