package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node. Every command
// shares the one stderr logger it provides.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})
}
