package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/provcache/internal/core/domain"
)

// provenanceFlags describe a package snapshot on the command line.
type provenanceFlags struct {
	sourceURL   string
	sourceHash  string
	vcsType     string
	vcsURL      string
	vcsRevision string
	vcsPath     string
}

func (f *provenanceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.sourceURL, "source-url", "", "URL of the scanned source artifact")
	flags.StringVar(&f.sourceHash, "source-hash", "", "Hash of the scanned source artifact")
	flags.StringVar(&f.vcsType, "vcs-type", "", "VCS type, e.g. Git")
	flags.StringVar(&f.vcsURL, "vcs-url", "", "VCS repository URL")
	flags.StringVar(&f.vcsRevision, "vcs-revision", "", "Requested VCS revision")
	flags.StringVar(&f.vcsPath, "vcs-path", "", "Path inside the VCS repository")
}

// provenance builds the provenance described by the flags. Without any
// provenance flag the result is empty.
func (f *provenanceFlags) provenance() (domain.Provenance, error) {
	hasSource := f.sourceURL != "" || f.sourceHash != ""
	hasVcs := f.vcsType != "" || f.vcsURL != "" || f.vcsRevision != "" || f.vcsPath != ""

	switch {
	case hasSource && hasVcs:
		return domain.Provenance{}, domain.ErrInvalidProvenanceFlags
	case hasSource:
		return domain.Provenance{
			SourceArtifact: &domain.RemoteArtifact{URL: f.sourceURL, Hash: domain.NewHash(f.sourceHash)},
		}, nil
	case hasVcs:
		return domain.Provenance{
			VcsInfo: &domain.VcsInfo{
				Type:     domain.ParseVcsType(f.vcsType),
				URL:      f.vcsURL,
				Revision: f.vcsRevision,
				Path:     f.vcsPath,
			},
		}, nil
	default:
		return domain.Provenance{}, nil
	}
}

// scannerFlags describe the scanner a compatible result is requested for.
type scannerFlags struct {
	name          string
	version       string
	configuration string
}

func (f *scannerFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "scanner", "", "Name of the scanner to find compatible results for")
	flags.StringVar(&f.version, "scanner-version", "", "Version of the scanner")
	flags.StringVar(&f.configuration, "scanner-config", "", "Configuration fingerprint of the scanner")
}

func (f *scannerFlags) isSet() bool {
	return f.name != "" || f.version != "" || f.configuration != ""
}

func (f *scannerFlags) details() domain.ScannerDetails {
	return domain.ScannerDetails{Name: f.name, Version: f.version, Configuration: f.configuration}
}
