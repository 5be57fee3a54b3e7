package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// SettingsNodeID is the unique identifier for the settings Graft node.
	SettingsNodeID graft.ID = "adapter.settings"

	// LoaderNodeID is the unique identifier for the package configuration loader Graft node.
	LoaderNodeID graft.ID = "adapter.package_configuration_loader"
)

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Settings, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get working directory")
			}
			return NewSettingsLoader(NewOSFS(), os.Getenv).Load(cwd)
		},
	})

	graft.Register(graft.Node[ports.PackageConfigurationLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageConfigurationLoader, error) {
			return NewPackageConfigurationLoader(NewOSFS()), nil
		},
	})
}
