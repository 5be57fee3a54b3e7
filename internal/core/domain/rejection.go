package domain

import "fmt"

// RejectionReason classifies why the validation gate refused a scan result.
type RejectionReason uint8

const (
	// ReasonMissingPayload means the raw scanner output is absent or empty.
	ReasonMissingPayload RejectionReason = iota + 1
	// ReasonNoFilesScanned means the summary reports zero scanned files.
	ReasonNoFilesScanned
	// ReasonNoProvenance means neither a source artifact nor VCS information is recorded.
	ReasonNoProvenance
)

// String returns a stable name suitable for log fields and metric attributes.
func (r RejectionReason) String() string {
	switch r {
	case ReasonMissingPayload:
		return "missing_payload"
	case ReasonNoFilesScanned:
		return "no_files_scanned"
	case ReasonNoProvenance:
		return "no_provenance"
	default:
		return "unknown"
	}
}

// RejectionError is returned when a scan result must not be stored.
// It is deterministic: resubmitting the same result fails the same way.
type RejectionError struct {
	ID     Identifier
	Reason RejectionReason
}

// NewRejectionError creates a RejectionError for the given package.
func NewRejectionError(id Identifier, reason RejectionReason) *RejectionError {
	return &RejectionError{ID: id, Reason: reason}
}

// Error returns the human readable reason.
func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonNoProvenance:
		return fmt.Sprintf("Not storing scan result for '%s' because no provenance information is available.", e.ID)
	default:
		return fmt.Sprintf("Not storing scan result for '%s' because no files were scanned.", e.ID)
	}
}

// Is makes every RejectionError match ErrRejected.
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}
