package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the table cache Graft node.
const NodeID graft.ID = "adapter.table_cache"

func init() {
	graft.Register(graft.Node[ports.TableCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TableCache, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
