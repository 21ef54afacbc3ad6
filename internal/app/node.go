package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rsym/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rsym/internal/adapters/filter"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rsym/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/rsym/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/rsym/internal/core/ports"
	"go.trai.ch/rsym/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			resolver.NodeID,
			filter.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	workspace, err := graft.Dep[*resolver.Workspace](ctx)
	if err != nil {
		return nil, err
	}

	filters, err := graft.Dep[ports.FilterCompiler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, workspace, filters, w, log), nil
}
