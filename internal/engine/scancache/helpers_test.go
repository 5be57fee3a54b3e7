package scancache_test

import (
	"context"
	"sync"

	"go.trai.ch/provcache/internal/core/domain"
)

const artifactHash = "5f2b8d5a4c0e1f3a9b7d6c8e2a1f0b3c4d5e6f70"

func artifactResult(url, scanner, version string) domain.ScanResult {
	return domain.ScanResult{
		Provenance: domain.Provenance{
			SourceArtifact: &domain.RemoteArtifact{URL: url, Hash: domain.NewHash(artifactHash)},
		},
		Scanner: domain.ScannerDetails{Name: scanner, Version: version, Configuration: "--json"},
		Summary: domain.ScanSummary{FileCount: 4},
		Raw:     domain.RawPayload(`{"files":[{"path":"LICENSE"}]}`),
	}
}

func vcsResult(vcs, original domain.VcsInfo) domain.ScanResult {
	return domain.ScanResult{
		Provenance: domain.Provenance{VcsInfo: &vcs, OriginalVcsInfo: &original},
		Scanner:    domain.ScannerDetails{Name: "ScanCode", Version: "1.0.0", Configuration: "--json"},
		Summary:    domain.ScanSummary{FileCount: 12},
		Raw:        domain.RawPayload(`{"files":[]}`),
	}
}

// memStore is an in-memory ports.ScanResultStore.
type memStore struct {
	mu      sync.Mutex
	results map[domain.Identifier][]domain.ScanResult
}

func newMemStore() *memStore {
	return &memStore{results: make(map[domain.Identifier][]domain.ScanResult)}
}

func (s *memStore) Append(_ context.Context, id domain.Identifier, result domain.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = append(s.results[id], result)
	return nil
}

func (s *memStore) LoadAll(_ context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ScanResult{}, s.results[id]...), nil
}
