// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/provcache/internal/core/domain"
)

// ScanResultStore is the persistence port for scan results.
//
// The store is append-only and groups results by package identifier.
// Implementations must make Append atomic per identifier so that concurrent
// appends never lose a result, and LoadAll must observe a consistent snapshot.
// Transient failures, including an expired or cancelled context, are reported
// as *domain.BackendError of kind domain.BackendUnavailable. Records that
// cannot be decoded are excluded from LoadAll instead of failing it.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ScanResultStore interface {
	// Append adds a result to the list stored for id.
	Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error

	// LoadAll returns all results stored for id.
	// It returns an empty slice and no error if nothing is stored.
	LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error)
}
