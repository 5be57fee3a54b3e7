// Package storage selects and assembles the configured scan result store.
package storage

import (
	"context"

	"go.trai.ch/provcache/internal/adapters/config"
	"go.trai.ch/provcache/internal/adapters/filestore"
	"go.trai.ch/provcache/internal/adapters/postgres"
	"go.trai.ch/provcache/internal/adapters/resilient"
	"go.trai.ch/provcache/internal/adapters/s3store"
	"go.trai.ch/provcache/internal/adapters/telemetry"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Backend is the assembled store of the configured backend.
// Calls pass through tracing, then retries with per-attempt timeouts,
// then the backend itself.
type Backend struct {
	// Name is the configured backend.
	Name config.Backend
	// Store is the decorated store used by the engine.
	Store ports.ScanResultStore

	close func()
}

// Close releases the backend's resources.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Build opens the backend selected by settings, prepares its schema or
// bucket and decorates it.
func Build(ctx context.Context, settings *config.Settings, logger ports.Logger) (*Backend, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	storage := settings.Storage
	backend := &Backend{Name: storage.Backend}

	var store ports.ScanResultStore
	switch storage.Backend {
	case config.BackendFile:
		store = filestore.New(storage.File.Root, logger)

	case config.BackendPostgres:
		pg, err := postgres.Open(ctx, storage.Postgres.URL, storage.Postgres.Table, logger)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		store = pg
		backend.close = pg.Close

	case config.BackendS3:
		s3, err := s3store.New(s3store.Options{
			ClientOptions: s3store.ClientOptions{
				Endpoint:  storage.S3.Endpoint,
				AccessKey: storage.S3.AccessKey,
				SecretKey: storage.S3.SecretKey,
				Region:    storage.S3.Region,
				UseSSL:    storage.S3.UseSSL,
			},
			Bucket: storage.S3.Bucket,
			Prefix: storage.S3.Prefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		store = s3

	default:
		return nil, zerr.With(domain.ErrUnknownBackend, "backend", string(storage.Backend))
	}

	store = resilient.New(store, resilient.Config{
		Timeout:      storage.Timeout,
		MaxAttempts:  storage.Retry.MaxAttempts,
		InitialDelay: storage.Retry.InitialDelay,
		MaxDelay:     storage.Retry.MaxDelay,
	}, logger)

	traced, err := telemetry.NewFromGlobal(store)
	if err != nil {
		backend.Close()
		return nil, err
	}
	backend.Store = traced

	return backend, nil
}
