// Package pkgconfig selects the package configuration that applies to a
// package snapshot.
package pkgconfig

import (
	"slices"

	"go.trai.ch/provcache/internal/core/domain"
)

// Matches reports whether config applies to the package snapshot identified
// by id and provenance. VCS matchers compare exactly against the resolved
// VCS location only, with no fallback to the original location.
func Matches(config domain.PackageConfiguration, id domain.Identifier, provenance domain.Provenance) bool {
	if config.ID != id {
		return false
	}

	if config.VcsMatcher != nil {
		return provenance.VcsInfo != nil && config.VcsMatcher.Matches(*provenance.VcsInfo)
	}

	return provenance.SourceArtifact != nil && provenance.SourceArtifact.URL == config.SourceArtifactURL
}

// Provider answers package configuration lookups. It is immutable after
// construction and safe for concurrent use.
type Provider struct {
	byID map[domain.Identifier][]domain.PackageConfiguration
}

// NewProvider groups configs by identifier. Order within an identifier is
// preserved, so the first matching entry wins on lookup.
func NewProvider(configs []domain.PackageConfiguration) *Provider {
	byID := make(map[domain.Identifier][]domain.PackageConfiguration)
	for _, config := range configs {
		byID[config.ID] = append(byID[config.ID], config)
	}

	return &Provider{byID: byID}
}

// Get returns the first configuration matching the package snapshot.
func (p *Provider) Get(id domain.Identifier, provenance domain.Provenance) (domain.PackageConfiguration, bool) {
	for _, config := range p.byID[id] {
		if Matches(config, id, provenance) {
			return config, true
		}
	}

	return domain.PackageConfiguration{}, false
}

// PathExcludes returns the path excludes configured for the package snapshot.
func (p *Provider) PathExcludes(id domain.Identifier, provenance domain.Provenance) []domain.PathExclude {
	config, ok := p.Get(id, provenance)
	if !ok {
		return nil
	}

	return slices.Clone(config.PathExcludes)
}

// IsExcluded returns the first path exclude matching path, if any.
func (p *Provider) IsExcluded(id domain.Identifier, provenance domain.Provenance, path string) (domain.PathExclude, bool) {
	for _, exclude := range p.PathExcludes(id, provenance) {
		if exclude.Matches(path) {
			return exclude, true
		}
	}

	return domain.PathExclude{}, false
}

// Len returns the number of configurations held by the provider.
func (p *Provider) Len() int {
	n := 0
	for _, configs := range p.byID {
		n += len(configs)
	}
	return n
}
