package domain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"time"
)

// TextLocation is a line range inside a file.
type TextLocation struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

func compareLocations(a, b TextLocation) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.EndLine, b.EndLine),
	)
}

// LicenseFinding is a license detected at a location.
// The license is kept as the raw string reported by the scanner.
type LicenseFinding struct {
	License  string       `json:"license"`
	Location TextLocation `json:"location"`
}

// CopyrightFinding is a copyright statement detected at a location.
type CopyrightFinding struct {
	Statement string       `json:"statement"`
	Location  TextLocation `json:"location"`
}

// Severity classifies an Issue.
type Severity string

const (
	// SeverityError marks issues that make the result unreliable.
	SeverityError Severity = "ERROR"
	// SeverityWarning marks issues that may affect the result.
	SeverityWarning Severity = "WARNING"
	// SeverityHint marks informational issues.
	SeverityHint Severity = "HINT"
)

// Issue is a problem reported by a scanner run.
type Issue struct {
	Timestamp time.Time `json:"timestamp,omitzero"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity,omitzero"`
}

// ScanSummary is the scanner independent summary of a scan run.
type ScanSummary struct {
	StartTime               time.Time          `json:"start_time,omitzero"`
	EndTime                 time.Time          `json:"end_time,omitzero"`
	FileCount               uint               `json:"file_count"`
	PackageVerificationCode string             `json:"package_verification_code,omitzero"`
	LicenseFindings         []LicenseFinding   `json:"licenses,omitempty"`
	CopyrightFindings       []CopyrightFinding `json:"copyrights,omitempty"`
	Issues                  []Issue            `json:"issues,omitempty"`
}

// Normalized returns a copy of the summary with findings sorted and duplicates removed.
// Issues keep their order.
func (s ScanSummary) Normalized() ScanSummary {
	out := s

	out.LicenseFindings = slices.Clone(s.LicenseFindings)
	slices.SortFunc(out.LicenseFindings, func(a, b LicenseFinding) int {
		return cmp.Or(compareLocations(a.Location, b.Location), cmp.Compare(a.License, b.License))
	})
	out.LicenseFindings = slices.Compact(out.LicenseFindings)

	out.CopyrightFindings = slices.Clone(s.CopyrightFindings)
	slices.SortFunc(out.CopyrightFindings, func(a, b CopyrightFinding) int {
		return cmp.Or(compareLocations(a.Location, b.Location), cmp.Compare(a.Statement, b.Statement))
	})
	out.CopyrightFindings = slices.Compact(out.CopyrightFindings)

	out.Issues = slices.Clone(s.Issues)

	return out
}

// RawPayload is the unprocessed scanner output. The cache never inspects it
// beyond checking for presence. It is usually a JSON document but any bytes
// are accepted.
type RawPayload []byte

// IsEmpty reports whether the payload is absent or an explicitly empty document.
func (p RawPayload) IsEmpty() bool {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}

	if trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return false
	}
	return len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0
}

// MarshalJSON embeds a JSON payload verbatim and any other payload as a string.
func (p RawPayload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	if !json.Valid(p) {
		return json.Marshal(string(p))
	}
	return p, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (p *RawPayload) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	*p = append((*p)[0:0], data...)
	return nil
}

// ScanResult is the outcome of scanning one provenance with one scanner.
type ScanResult struct {
	Provenance Provenance     `json:"provenance"`
	Scanner    ScannerDetails `json:"scanner"`
	Summary    ScanSummary    `json:"summary"`
	Raw        RawPayload     `json:"raw_result,omitempty"`
}

// ScanResultContainer holds all results for a package identifier.
type ScanResultContainer struct {
	ID      Identifier   `json:"id"`
	Results []ScanResult `json:"results"`
}

// NewScanResultContainer creates a container with a non-nil result list.
func NewScanResultContainer(id Identifier, results []ScanResult) ScanResultContainer {
	if results == nil {
		results = []ScanResult{}
	}
	return ScanResultContainer{ID: id, Results: results}
}

// IsEmpty reports whether the container holds no results.
func (c ScanResultContainer) IsEmpty() bool {
	return len(c.Results) == 0
}
