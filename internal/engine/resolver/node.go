package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rsym/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rsym/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rsym/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rsym/internal/core/ports"
)

// NodeID is the unique identifier for the workspace Graft node.
const NodeID graft.ID = "engine.workspace"

func init() {
	graft.Register(graft.Node[*Workspace]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Workspace, error) {
			cache, err := graft.Dep[ports.TableCache](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewWorkspace(New(), cache, hasher, tracer, log), nil
		},
	})
}
