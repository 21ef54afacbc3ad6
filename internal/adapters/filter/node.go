package filter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the filter compiler Graft node.
const NodeID graft.ID = "adapter.filter"

func init() {
	graft.Register(graft.Node[ports.FilterCompiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FilterCompiler, error) {
			return NewCompiler(), nil
		},
	})
}
