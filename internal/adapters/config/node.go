package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/adapters/logger"
	"go.trai.ch/rsym/internal/adapters/resdir"
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, resdir.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			scanner, err := graft.Dep[ports.ResourceScanner](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, scanner), nil
		},
	})
}
