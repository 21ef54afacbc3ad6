package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/adapters/fs"
	"go.trai.ch/rsym/internal/adapters/logger"
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			fileHasher, ok := hasher.(FileHasher)
			if !ok {
				return nil, zerr.With(zerr.New("hasher cannot hash file content"), "type", fmt.Sprintf("%T", hasher))
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(walker, fileHasher, log)
		},
	})
}
