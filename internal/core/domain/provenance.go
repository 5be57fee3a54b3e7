package domain

import "time"

// RemoteArtifact is a fixed, immutable download location of a source artifact.
type RemoteArtifact struct {
	URL  string `json:"url"`
	Hash Hash   `json:"hash"`
}

// Provenance records which source snapshot was scanned.
//
// Exactly one of SourceArtifact and VcsInfo is set for a valid provenance.
// OriginalVcsInfo, when set, holds the VCS location as it was requested
// before the revision was resolved into VcsInfo.
type Provenance struct {
	DownloadTime    time.Time       `json:"download_time,omitzero"`
	SourceArtifact  *RemoteArtifact `json:"source_artifact,omitempty"`
	VcsInfo         *VcsInfo        `json:"vcs_info,omitempty"`
	OriginalVcsInfo *VcsInfo        `json:"original_vcs_info,omitempty"`
}

// IsEmpty reports whether neither a source artifact nor VCS information is present.
func (p Provenance) IsEmpty() bool {
	return p.SourceArtifact == nil && p.VcsInfo == nil
}

// Package is a package snapshot for which cached results are requested.
type Package struct {
	ID         Identifier `json:"id"`
	Provenance Provenance `json:"provenance"`
}
