// Package scancache implements the validation gate and the retrieval matcher
// of the scan result cache on top of a ports.ScanResultStore.
package scancache

import (
	"context"
	"errors"

	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Storage admits scan results into a store and reads back the ones usable
// for a package snapshot and scanner.
type Storage struct {
	store  ports.ScanResultStore
	logger ports.Logger
	stats  accessCounter
}

// NewStorage creates a Storage on top of the given store.
func NewStorage(store ports.ScanResultStore, logger ports.Logger) *Storage {
	return &Storage{
		store:  store,
		logger: logger,
	}
}

// Add validates result and appends it to the results stored for id unchanged.
// A rejected result is returned as *domain.RejectionError and never reaches the store.
func (s *Storage) Add(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	if err := Admit(id, result); err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			s.logger.Warn(rejection.Error(), "id", id.String(), "reason", rejection.Reason.String())
		}
		return err
	}

	if err := s.store.Append(ctx, id, result); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add scan result"), "id", id.String())
	}

	return nil
}

// ReadAll returns every result stored for id.
// Absence of results is an empty container, not an error.
func (s *Storage) ReadAll(ctx context.Context, id domain.Identifier) (domain.ScanResultContainer, error) {
	results, err := s.store.LoadAll(ctx, id)
	if err != nil {
		return domain.ScanResultContainer{}, zerr.With(zerr.Wrap(err, "failed to read scan results"), "id", id.String())
	}

	return domain.NewScanResultContainer(id, results), nil
}

// ReadCompatible returns the results stored for pkg.ID whose provenance
// matches pkg.Provenance and whose scanner is compatible with wanted.
// The order of the returned results is unspecified.
func (s *Storage) ReadCompatible(
	ctx context.Context,
	pkg domain.Package,
	wanted domain.ScannerDetails,
) (domain.ScanResultContainer, error) {
	results, err := s.store.LoadAll(ctx, pkg.ID)
	if err != nil {
		return domain.ScanResultContainer{}, zerr.With(zerr.Wrap(err, "failed to read scan results"), "id", pkg.ID.String())
	}

	matching := make([]domain.ScanResult, 0, len(results))
	for i := range results {
		if ProvenanceMatches(results[i].Provenance, pkg.Provenance) && ScannerCompatible(results[i].Scanner, wanted) {
			matching = append(matching, results[i])
		}
	}

	s.stats.record(len(matching) > 0)

	return domain.NewScanResultContainer(pkg.ID, matching), nil
}

// Stats returns the access statistics of ReadCompatible calls.
func (s *Storage) Stats() AccessStatistics {
	return s.stats.snapshot()
}
