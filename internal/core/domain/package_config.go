package domain

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// PathExcludeReason explains why a path is excluded.
type PathExcludeReason string

// Known path exclude reasons.
const (
	ExcludeReasonBuildToolOf         PathExcludeReason = "BUILD_TOOL_OF"
	ExcludeReasonDataFileOf          PathExcludeReason = "DATA_FILE_OF"
	ExcludeReasonDocumentationOf     PathExcludeReason = "DOCUMENTATION_OF"
	ExcludeReasonExampleOf           PathExcludeReason = "EXAMPLE_OF"
	ExcludeReasonOptionalComponentOf PathExcludeReason = "OPTIONAL_COMPONENT_OF"
	ExcludeReasonOther               PathExcludeReason = "OTHER"
	ExcludeReasonProvidedBy          PathExcludeReason = "PROVIDED_BY"
	ExcludeReasonTestOf              PathExcludeReason = "TEST_OF"
	ExcludeReasonTestToolOf          PathExcludeReason = "TEST_TOOL_OF"
)

// IsValid reports whether r is one of the known reasons.
func (r PathExcludeReason) IsValid() bool {
	switch r {
	case ExcludeReasonBuildToolOf, ExcludeReasonDataFileOf, ExcludeReasonDocumentationOf, ExcludeReasonExampleOf,
		ExcludeReasonOptionalComponentOf, ExcludeReasonOther, ExcludeReasonProvidedBy, ExcludeReasonTestOf, ExcludeReasonTestToolOf:
		return true
	default:
		return false
	}
}

// PathExclude excludes files matching a glob pattern from a package's scan.
type PathExclude struct {
	Pattern string            `json:"pattern"`
	Reason  PathExcludeReason `json:"reason"`
	Comment string            `json:"comment,omitzero"`
}

// Matches reports whether path is matched by the pattern. Paths are
// slash-separated and relative to the package root; "**" spans directories.
func (e PathExclude) Matches(path string) bool {
	path = strings.TrimPrefix(path, "./")
	ok, err := doublestar.Match(e.Pattern, path)
	return err == nil && ok
}

// VcsMatcher selects a package snapshot by its requested VCS location.
type VcsMatcher struct {
	Type     VcsType `json:"type"`
	URL      string  `json:"url"`
	Revision string  `json:"revision"`
}

// Matches reports whether vcs has exactly the matcher's type, URL and revision.
// Unlike VcsInfo.SameRequest, no aliasing, case folding or trimming applies.
func (m VcsMatcher) Matches(vcs VcsInfo) bool {
	return m.Type == vcs.Type && m.URL == vcs.URL && m.Revision == vcs.Revision
}

// PackageConfiguration holds per-snapshot settings for a package.
// Exactly one of SourceArtifactURL and VcsMatcher is set.
type PackageConfiguration struct {
	ID                Identifier    `json:"id"`
	SourceArtifactURL string        `json:"source_artifact_url,omitzero"`
	VcsMatcher        *VcsMatcher   `json:"vcs,omitempty"`
	PathExcludes      []PathExclude `json:"path_excludes,omitempty"`
}

// Validate checks the structural invariants of the configuration.
func (c PackageConfiguration) Validate() error {
	if c.ID.Type == "" || c.ID.Name == "" {
		return zerr.With(ErrInvalidPackageConfiguration, "reason", "identifier requires type and name")
	}

	hasURL := c.SourceArtifactURL != ""
	hasVcs := c.VcsMatcher != nil
	if hasURL == hasVcs {
		err := zerr.With(ErrInvalidPackageConfiguration, "id", c.ID.String())
		return zerr.With(err, "reason", "exactly one of source_artifact_url and vcs must be set")
	}

	for _, exclude := range c.PathExcludes {
		if !doublestar.ValidatePattern(exclude.Pattern) {
			err := zerr.With(ErrInvalidPackageConfiguration, "id", c.ID.String())
			return zerr.With(err, "pattern", exclude.Pattern)
		}
		if !exclude.Reason.IsValid() {
			err := zerr.With(ErrInvalidPackageConfiguration, "id", c.ID.String())
			return zerr.With(err, "reason", string(exclude.Reason))
		}
	}

	return nil
}
