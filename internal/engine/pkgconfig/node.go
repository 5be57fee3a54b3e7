package pkgconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/provcache/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the package configuration provider Graft node.
const NodeID graft.ID = "engine.pkgconfig"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			config.LoaderNodeID,
		},
		Run: func(ctx context.Context) (*Provider, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.PackageConfigurationLoader](ctx)
			if err != nil {
				return nil, err
			}

			configs, err := loader.Load(settings.PackageConfigurations)
			if err != nil {
				return nil, zerr.Wrap(err, "failed to load package configurations")
			}

			return NewProvider(configs), nil
		},
	})
}
