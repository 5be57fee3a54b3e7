package scancache

import "go.trai.ch/provcache/internal/core/domain"

// Admit decides whether result may be stored for id.
// It returns nil if the result is admitted and a *domain.RejectionError otherwise.
// An empty provenance is reported before payload and file count problems.
func Admit(id domain.Identifier, result domain.ScanResult) error {
	if result.Provenance.IsEmpty() {
		return domain.NewRejectionError(id, domain.ReasonNoProvenance)
	}

	if result.Raw.IsEmpty() {
		return domain.NewRejectionError(id, domain.ReasonMissingPayload)
	}

	if result.Summary.FileCount == 0 {
		return domain.NewRejectionError(id, domain.ReasonNoFilesScanned)
	}

	return nil
}
