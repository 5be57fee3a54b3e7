package domain

import "go.trai.ch/zerr"

var (
	// ErrRejected is matched by every RejectionError returned by the validation gate.
	ErrRejected = zerr.New("scan result rejected")

	// ErrBackendUnavailable is matched by backend errors that are transient and safe to retry.
	ErrBackendUnavailable = zerr.New("scan result backend unavailable")

	// ErrRecordCorrupt is matched by backend errors for records that cannot be decoded.
	ErrRecordCorrupt = zerr.New("stored scan result is corrupt")

	// ErrInvalidIdentifier is returned when package coordinates cannot be parsed.
	ErrInvalidIdentifier = zerr.New("invalid package identifier, expected format: Type:Namespace:Name:Version")

	// ErrInvalidPackageConfiguration is returned when a package configuration violates its invariants.
	ErrInvalidPackageConfiguration = zerr.New("invalid package configuration")

	// ErrUnknownBackend is returned when the configured storage backend is not supported.
	ErrUnknownBackend = zerr.New("unknown storage backend, expected 'file', 'postgres' or 's3'")

	// ErrMissingBackendSetting is returned when a required backend setting is empty.
	ErrMissingBackendSetting = zerr.New("missing storage backend setting")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrStoreCreateFailed is returned when the store location cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create scan result store")

	// ErrStoreReadFailed is returned when stored records cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read scan results")

	// ErrStoreWriteFailed is returned when a record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write scan result")

	// ErrStoreMarshalFailed is returned when a record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal scan result")

	// ErrInputReadFailed is returned when a CLI input document cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input document")

	// ErrInvalidProvenanceFlags is returned when provenance flags mix source artifact and VCS options.
	ErrInvalidProvenanceFlags = zerr.New("specify either a source artifact or a VCS location, not both")
)
