package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/provcache/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/provcache/internal/adapters/storage" //nolint:depguard // Wired in app layer
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/provcache/internal/engine/pkgconfig"
	"go.trai.ch/provcache/internal/engine/scancache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			scancache.NodeID,
			pkgconfig.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			store, err := graft.Dep[*scancache.Storage](ctx)
			if err != nil {
				return nil, err
			}

			configs, err := graft.Dep[*pkgconfig.Provider](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, configs, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			storage.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	backend, err := graft.Dep[*storage.Backend](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, backend), nil
}
