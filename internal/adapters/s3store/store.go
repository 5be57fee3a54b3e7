// Package s3store implements the scan result store on S3-compatible object storage.
package s3store

import (
	"context"
	"errors"
	"net"
	"path"
	"slices"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"go.trai.ch/provcache/internal/adapters/record"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds the number of parallel object downloads per load.
const fetchConcurrency = 8

// Store implements ports.ScanResultStore with one object per record.
//
// Objects live under <prefix>/<record.Path(id)>/<record key>. PutObject is
// atomic per key, so appends never overwrite each other. Listings are only
// eventually consistent on some providers; a record written by another
// process may show up on a later load.
type Store struct {
	client objectClient
	bucket string
	region string
	prefix string
	logger ports.Logger
}

// Options configures a Store.
type Options struct {
	ClientOptions
	Bucket string
	Prefix string
}

// New creates a Store for the configured bucket.
func New(opts Options, logger ports.Logger) (*Store, error) {
	if opts.Bucket == "" {
		return nil, zerr.With(domain.ErrMissingBackendSetting, "setting", "storage.s3.bucket")
	}

	client, err := newMinioClient(opts.ClientOptions)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	return newStore(client, opts, logger), nil
}

func newStore(client objectClient, opts Options, logger ports.Logger) *Store {
	return &Store{
		client: client,
		bucket: opts.Bucket,
		region: opts.Region,
		prefix: strings.Trim(opts.Prefix, "/"),
		logger: logger,
	}
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	if err := s.client.EnsureBucket(ctx, s.bucket, s.region); err != nil {
		return classify("ensure_bucket", err)
	}
	return nil
}

// Append implements ports.ScanResultStore.
func (s *Store) Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	data, err := record.Encode(result)
	if err != nil {
		return err
	}

	key := path.Join(s.dir(id), record.NewKey())
	if err := s.client.Put(ctx, s.bucket, key, data); err != nil {
		return classify("append", zerr.With(err, "key", key))
	}

	return nil
}

// LoadAll implements ports.ScanResultStore.
func (s *Store) LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	keys, err := s.client.List(ctx, s.bucket, s.dir(id)+"/")
	if err != nil {
		return nil, classify("load_all", err)
	}

	keys = slices.DeleteFunc(keys, func(key string) bool {
		return !record.IsKey(path.Base(key))
	})
	slices.Sort(keys)

	entries := make([]record.Entry, len(keys))
	found := make([]bool, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, key := range keys {
		g.Go(func() error {
			data, err := s.client.Get(gctx, s.bucket, key)
			if err != nil {
				if errors.Is(err, errNoSuchKey) {
					return nil
				}
				return zerr.With(err, "key", key)
			}
			entries[i] = record.Entry{Key: key, Data: data}
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify("load_all", err)
	}

	present := make([]record.Entry, 0, len(entries))
	for i, entry := range entries {
		if found[i] {
			present = append(present, entry)
		}
	}

	return record.DecodeAll(s.logger, present), nil
}

func (s *Store) dir(id domain.Identifier) string {
	if s.prefix == "" {
		return record.Path(id)
	}
	return path.Join(s.prefix, record.Path(id))
}

// classify maps client errors onto the backend error taxonomy.
func classify(op string, err error) error {
	if isTransient(err) {
		return domain.NewUnavailableError(op, err)
	}

	sentinel := domain.ErrStoreWriteFailed
	if op == "load_all" {
		sentinel = domain.ErrStoreReadFailed
	}

	return zerr.With(zerr.Wrap(err, sentinel.Error()), "op", op)
}

func isTransient(err error) bool {
	if domain.IsContextError(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "InternalError", "ServiceUnavailable", "SlowDown", "RequestTimeout", "RequestTimeTooSkewed":
			return true
		}
		return resp.StatusCode >= 500
	}

	return false
}
