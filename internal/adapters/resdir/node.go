package resdir

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/adapters/fs"
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the res/ scanner Graft node.
const NodeID graft.ID = "adapter.resdir"

func init() {
	graft.Register(graft.Node[ports.ResourceScanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.ResourceScanner, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(walker), nil
		},
	})
}
