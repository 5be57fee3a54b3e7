package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// PackageConfigurationLoader implements ports.PackageConfigurationLoader by
// reading one YAML document per file from a directory tree.
type PackageConfigurationLoader struct {
	FS FileSystem
}

// NewPackageConfigurationLoader creates a PackageConfigurationLoader.
func NewPackageConfigurationLoader(fsys FileSystem) *PackageConfigurationLoader {
	return &PackageConfigurationLoader{FS: fsys}
}

// Load reads every .yml and .yaml file below dir in lexical order.
func (l *PackageConfigurationLoader) Load(dir string) ([]domain.PackageConfiguration, error) {
	if _, err := l.FS.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", dir)
	}

	var configs []domain.PackageConfiguration
	err := l.FS.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}

		config, err := l.loadFile(path)
		if err != nil {
			return zerr.With(err, "file", path)
		}
		configs = append(configs, config)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return configs, nil
}

func (l *PackageConfigurationLoader) loadFile(path string) (domain.PackageConfiguration, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return domain.PackageConfiguration{}, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var dto PackageConfigurationDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return domain.PackageConfiguration{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	config, err := dto.toDomain()
	if err != nil {
		return domain.PackageConfiguration{}, err
	}

	if err := config.Validate(); err != nil {
		return domain.PackageConfiguration{}, err
	}

	return config, nil
}

func (dto PackageConfigurationDTO) toDomain() (domain.PackageConfiguration, error) {
	id, err := domain.ParseIdentifier(dto.ID)
	if err != nil {
		return domain.PackageConfiguration{}, err
	}

	config := domain.PackageConfiguration{
		ID:                id,
		SourceArtifactURL: strings.TrimSpace(dto.SourceArtifactURL),
	}

	if dto.VCS != nil {
		config.VcsMatcher = &domain.VcsMatcher{
			Type:     domain.ParseVcsType(dto.VCS.Type),
			URL:      strings.TrimSpace(dto.VCS.URL),
			Revision: strings.TrimSpace(dto.VCS.Revision),
		}
	}

	for _, exclude := range dto.PathExcludes {
		config.PathExcludes = append(config.PathExcludes, domain.PathExclude{
			Pattern: exclude.Pattern,
			Reason:  domain.PathExcludeReason(strings.ToUpper(strings.TrimSpace(exclude.Reason))),
			Comment: exclude.Comment,
		})
	}

	return config, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}
