package ports

import "go.trai.ch/provcache/internal/core/domain"

// PackageConfigurationLoader loads package configurations from a directory tree.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type PackageConfigurationLoader interface {
	// Load reads every configuration file below dir. Entries are returned
	// as found; no deduplication is performed. A missing dir yields no entries.
	Load(dir string) ([]domain.PackageConfiguration, error)
}
