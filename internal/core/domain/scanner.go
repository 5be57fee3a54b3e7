package domain

// ScannerDetails identifies the scanner invocation that produced a result.
type ScannerDetails struct {
	// Name is the name of the scanner tool.
	Name string `json:"name"`

	// Version is the semantic version of the scanner tool.
	Version string `json:"version"`

	// Configuration is an opaque fingerprint of the scanner options,
	// e.g. the serialized command line.
	Configuration string `json:"configuration,omitzero"`
}

// String returns the scanner as "name version".
func (d ScannerDetails) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + " " + d.Version
}
