package domain

import "strings"

// VcsType is the type of version control system.
type VcsType string

const (
	// VcsGit is the Git version control system.
	VcsGit VcsType = "Git"
	// VcsGitRepo is Google's repo tool on top of Git.
	VcsGitRepo VcsType = "GitRepo"
	// VcsMercurial is the Mercurial version control system.
	VcsMercurial VcsType = "Mercurial"
	// VcsSubversion is the Subversion version control system.
	VcsSubversion VcsType = "Subversion"
)

var vcsAliases = map[string]VcsType{
	"git":        VcsGit,
	"gitrepo":    VcsGitRepo,
	"git-repo":   VcsGitRepo,
	"repo":       VcsGitRepo,
	"mercurial":  VcsMercurial,
	"hg":         VcsMercurial,
	"subversion": VcsSubversion,
	"svn":        VcsSubversion,
}

// ParseVcsType normalizes a VCS type name. Unknown names are kept verbatim.
func ParseVcsType(name string) VcsType {
	name = strings.TrimSpace(name)
	if t, ok := vcsAliases[strings.ToLower(name)]; ok {
		return t
	}
	return VcsType(name)
}

// Equal compares two VCS types after normalization, ignoring case.
func (t VcsType) Equal(other VcsType) bool {
	return strings.EqualFold(string(ParseVcsType(string(t))), string(ParseVcsType(string(other))))
}

// VcsInfo describes a location in a version control system.
type VcsInfo struct {
	// Type is the VCS type.
	Type VcsType `json:"type"`

	// URL is the repository URL.
	URL string `json:"url"`

	// Revision is the revision that was requested. It may be a branch, a tag,
	// or empty to denote the default branch.
	Revision string `json:"revision,omitzero"`

	// ResolvedRevision is the concrete commit that was checked out.
	ResolvedRevision string `json:"resolved_revision,omitzero"`

	// Path is the path inside the repository the package lives in.
	Path string `json:"path,omitzero"`
}

// SameRequest reports whether both infos address the same (type, url, revision).
// The resolved revision and the path are not compared.
func (v VcsInfo) SameRequest(other VcsInfo) bool {
	return v.Type.Equal(other.Type) &&
		v.URL == other.URL &&
		strings.TrimSpace(v.Revision) == strings.TrimSpace(other.Revision)
}

// HasRevision reports whether an explicit revision was requested.
func (v VcsInfo) HasRevision() bool {
	return strings.TrimSpace(v.Revision) != ""
}
