package domain

import (
	"context"
	"errors"
	"fmt"
)

// BackendErrorKind classifies persistence failures.
type BackendErrorKind uint8

const (
	// BackendUnavailable is a transient failure, e.g. a timeout or a lost connection.
	BackendUnavailable BackendErrorKind = iota + 1
	// BackendCorrupt means a stored record could not be decoded.
	BackendCorrupt
)

// String returns the kind name.
func (k BackendErrorKind) String() string {
	switch k {
	case BackendUnavailable:
		return "unavailable"
	case BackendCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// BackendError is returned by Persistence Port implementations.
type BackendError struct {
	Kind BackendErrorKind
	// Op is the port operation that failed, e.g. "append" or "load_all".
	Op  string
	Err error
}

// NewUnavailableError wraps err as a transient backend failure.
func NewUnavailableError(op string, err error) *BackendError {
	return &BackendError{Kind: BackendUnavailable, Op: op, Err: err}
}

// NewCorruptError wraps err as a record decoding failure.
func NewCorruptError(op string, err error) *BackendError {
	return &BackendError{Kind: BackendCorrupt, Op: op, Err: err}
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("scan result backend %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("scan result backend %s: %s: %s", e.Op, e.Kind, e.Err.Error())
}

// Unwrap returns the cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels ErrBackendUnavailable and ErrRecordCorrupt.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrBackendUnavailable:
		return e.Kind == BackendUnavailable
	case ErrRecordCorrupt:
		return e.Kind == BackendCorrupt
	default:
		return false
	}
}

// IsContextError reports whether err stems from a cancelled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
