package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/provcache/internal/adapters/config"
	"go.trai.ch/provcache/internal/adapters/storage"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBuild_File(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	settings := config.DefaultSettings(t.TempDir())

	backend, err := storage.Build(t.Context(), settings, log)
	require.NoError(t, err)
	defer backend.Close()

	assert.Equal(t, config.BackendFile, backend.Name)

	id := domain.Identifier{Type: "NPM", Name: "left-pad", Version: "1.3.0"}
	result := domain.ScanResult{
		Provenance: domain.Provenance{
			SourceArtifact: &domain.RemoteArtifact{URL: "https://example.com/left-pad.tgz", Hash: domain.NewHash("abc")},
		},
		Scanner: domain.ScannerDetails{Name: "ScanCode", Version: "32.0.8"},
		Summary: domain.ScanSummary{FileCount: 1},
		Raw:     domain.RawPayload(`{"files":[]}`),
	}

	require.NoError(t, backend.Store.Append(t.Context(), id, result))

	results, err := backend.Store.LoadAll(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, result.Scanner, results[0].Scanner)

	assert.DirExists(t, settings.Storage.File.Root)
}

func TestBuild_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Settings)
		wantErr error
	}{
		{
			name:    "unknown backend",
			modify:  func(s *config.Settings) { s.Storage.Backend = "redis" },
			wantErr: domain.ErrUnknownBackend,
		},
		{
			name:    "postgres without url",
			modify:  func(s *config.Settings) { s.Storage.Backend = config.BackendPostgres },
			wantErr: domain.ErrMissingBackendSetting,
		},
		{
			name: "s3 without bucket",
			modify: func(s *config.Settings) {
				s.Storage.Backend = config.BackendS3
				s.Storage.S3.Endpoint = "localhost:9000"
			},
			wantErr: domain.ErrMissingBackendSetting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			settings := config.DefaultSettings(t.TempDir())
			tt.modify(settings)

			backend, err := storage.Build(t.Context(), settings, mocks.NewMockLogger(ctrl))
			require.Error(t, err)
			assert.Nil(t, backend)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}
