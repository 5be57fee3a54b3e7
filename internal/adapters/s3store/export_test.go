package s3store

import "go.trai.ch/provcache/internal/core/ports"

// ObjectClient exposes objectClient for tests.
type ObjectClient = objectClient

// ErrNoSuchKey exposes errNoSuchKey for tests.
var ErrNoSuchKey = errNoSuchKey

// NewWithClient creates a Store on top of a test client.
func NewWithClient(client ObjectClient, opts Options, logger ports.Logger) *Store {
	return newStore(client, opts, logger)
}

// NewMinioClient exposes the minio backed client for tests.
func NewMinioClient(opts ClientOptions) (ObjectClient, error) {
	return newMinioClient(opts)
}
