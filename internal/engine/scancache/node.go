package scancache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/provcache/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/provcache/internal/adapters/storage" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/provcache/internal/core/ports"
)

// NodeID is the unique identifier for the scan result storage Graft node.
const NodeID graft.ID = "engine.scancache"

func init() {
	graft.Register(graft.Node[*Storage]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			storage.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Storage, error) {
			backend, err := graft.Dep[*storage.Backend](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewStorage(backend.Store, log), nil
		},
	})
}
