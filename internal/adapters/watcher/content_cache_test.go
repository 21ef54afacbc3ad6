package watcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rsym/internal/core/ports"
)

type fakeHasher map[string]uint64

func (f fakeHasher) ComputeFileHash(path string) (uint64, error) {
	sum, ok := f[path]
	if !ok {
		return 0, errors.New("missing")
	}
	return sum, nil
}

func TestContentCache_Changed(t *testing.T) {
	hashes := fakeHasher{"res/values/strings.xml": 1}
	cache := newContentCache(hashes)
	write := ports.WatchEvent{Path: "res/values/strings.xml", Operation: ports.OpWrite}

	// Nothing recorded yet: the first write passes.
	assert.True(t, cache.changed(write))
	assert.False(t, cache.changed(write), "identical content must be filtered")

	hashes["res/values/strings.xml"] = 2
	assert.True(t, cache.changed(write))
	assert.False(t, cache.changed(write))

	// Removal forgets the hash, so the next write passes again.
	assert.True(t, cache.changed(ports.WatchEvent{Path: write.Path, Operation: ports.OpRemove}))
	assert.True(t, cache.changed(write))

	// Unreadable files are always reported.
	delete(hashes, "res/values/strings.xml")
	assert.True(t, cache.changed(write))
	assert.True(t, cache.changed(write))
}

func TestContentCache_CreateRecords(t *testing.T) {
	hashes := fakeHasher{"res/layout/main.xml": 7}
	cache := newContentCache(hashes)

	assert.True(t, cache.changed(ports.WatchEvent{Path: "res/layout/main.xml", Operation: ports.OpCreate}))
	assert.False(t, cache.changed(ports.WatchEvent{Path: "res/layout/main.xml", Operation: ports.OpWrite}))
}
