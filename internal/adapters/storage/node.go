package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/provcache/internal/adapters/config"
	"go.trai.ch/provcache/internal/adapters/logger"
	"go.trai.ch/provcache/internal/core/ports"
)

// NodeID is the unique identifier for the scan result store Graft node.
const NodeID graft.ID = "adapter.scan_result_store"

func init() {
	graft.Register(graft.Node[*Backend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Backend, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return Build(ctx, settings, log)
		},
	})
}
