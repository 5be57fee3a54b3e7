package scancache

import (
	"strings"

	"go.trai.ch/provcache/internal/core/domain"
	"golang.org/x/mod/semver"
)

// ProvenanceMatches reports whether a stored provenance satisfies a requested one.
//
// A requested source artifact matches on URL and hash. A requested VCS
// location with an explicit revision matches the stored VCS location on
// type, URL and revision. Without a revision the request is compared to the
// stored original VCS location, since each scan may have resolved a
// different commit.
func ProvenanceMatches(stored, requested domain.Provenance) bool {
	if stored.IsEmpty() {
		return false
	}

	switch {
	case requested.SourceArtifact != nil:
		if stored.SourceArtifact == nil {
			return false
		}
		return stored.SourceArtifact.URL == requested.SourceArtifact.URL &&
			stored.SourceArtifact.Hash.Equal(requested.SourceArtifact.Hash)

	case requested.VcsInfo != nil && requested.VcsInfo.HasRevision():
		return stored.VcsInfo != nil && stored.VcsInfo.SameRequest(*requested.VcsInfo)

	case requested.VcsInfo != nil:
		return stored.OriginalVcsInfo != nil && stored.OriginalVcsInfo.SameRequest(*requested.VcsInfo)

	default:
		return false
	}
}

// ScannerCompatible reports whether a result produced by stored can be reused
// for wanted. Names and configurations must be equal and the versions must
// share major and minor components. Versions that are not strict semantic
// versions are never compatible.
func ScannerCompatible(stored, wanted domain.ScannerDetails) bool {
	if stored.Name != wanted.Name || stored.Configuration != wanted.Configuration {
		return false
	}

	storedVersion, ok := canonicalVersion(stored.Version)
	if !ok {
		return false
	}

	wantedVersion, ok := canonicalVersion(wanted.Version)
	if !ok {
		return false
	}

	return semver.MajorMinor(storedVersion) == semver.MajorMinor(wantedVersion)
}

// canonicalVersion returns version with a "v" prefix if it is a full
// MAJOR.MINOR.PATCH semantic version. Shorthands like "1.2" are rejected.
func canonicalVersion(version string) (string, bool) {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	if !semver.IsValid(v) {
		return "", false
	}

	// Canonical expands shorthands and drops build metadata.
	if semver.Canonical(v) != strings.TrimSuffix(v, semver.Build(v)) {
		return "", false
	}

	return v, true
}
