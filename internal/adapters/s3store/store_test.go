package s3store_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	minio "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/provcache/internal/adapters/s3store"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	// vanished keys are listed but fail on get, as after a concurrent delete.
	vanished map[string]bool
	listErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte), vanished: make(map[string]bool)}
}

func (c *fakeClient) EnsureBucket(context.Context, string, string) error {
	return nil
}

func (c *fakeClient) Put(_ context.Context, bucket, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[bucket+"/"+key] = append([]byte{}, data...)
	return nil
}

func (c *fakeClient) List(_ context.Context, bucket, prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}

	var keys []string
	for full := range c.objects {
		key := strings.TrimPrefix(full, bucket+"/")
		rest, ok := strings.CutPrefix(key, prefix)
		if ok && !strings.Contains(rest, "/") {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (c *fakeClient) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vanished[key] {
		return nil, errors.Join(s3store.ErrNoSuchKey, minio.ErrorResponse{Code: "NoSuchKey"})
	}
	return c.objects[bucket+"/"+key], nil
}

var testID = domain.Identifier{Type: "PyPI", Name: "requests", Version: "2.31.0"}

func scanResult(version string) domain.ScanResult {
	return domain.ScanResult{
		Provenance: domain.Provenance{
			SourceArtifact: &domain.RemoteArtifact{URL: "https://files.pythonhosted.org/requests-2.31.0.tar.gz"},
		},
		Scanner: domain.ScannerDetails{Name: "ScanCode", Version: version},
		Summary: domain.ScanSummary{FileCount: 42},
		Raw:     domain.RawPayload(`{"files":[]}`),
	}
}

func TestStore_AppendLoadAll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := newFakeClient()
	store := s3store.NewWithClient(client, s3store.Options{Bucket: "results", Prefix: "/cache/"}, mocks.NewMockLogger(ctrl))
	ctx := context.Background()

	for i := range 20 {
		require.NoError(t, store.Append(ctx, testID, scanResult(fmt.Sprintf("1.0.%d", i))))
	}
	require.NoError(t, store.Append(ctx, domain.Identifier{Type: "PyPI", Name: "requests", Version: "2.32.0"}, scanResult("1.0.0")))

	results, err := store.LoadAll(ctx, testID)
	require.NoError(t, err)
	assert.Len(t, results, 20)

	for key := range client.objects {
		assert.True(t, strings.HasPrefix(key, "results/cache/PyPI/_/requests/"), key)
	}

	empty, err := store.LoadAll(ctx, domain.Identifier{Type: "PyPI", Name: "missing"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_LoadAllSkipsVanishedAndCorrupt(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	client := newFakeClient()
	store := s3store.NewWithClient(client, s3store.Options{Bucket: "results"}, logger)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testID, scanResult("1.0.0")))
	require.NoError(t, store.Append(ctx, testID, scanResult("1.0.1")))
	require.NoError(t, store.Append(ctx, testID, scanResult("1.0.2")))

	keys, err := client.List(ctx, "results", "PyPI/_/requests/2.31.0/")
	require.NoError(t, err)
	require.Len(t, keys, 3)

	client.vanished[keys[0]] = true
	client.objects["results/"+keys[1]] = []byte("garbage")

	logger.EXPECT().Warn("skipping corrupt scan result record", "key", keys[1], "error", gomock.Any())

	results, err := store.LoadAll(ctx, testID)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_Errors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	t.Run("transient list failure", func(t *testing.T) {
		client := newFakeClient()
		client.listErr = minio.ErrorResponse{Code: "SlowDown", StatusCode: 503}
		store := s3store.NewWithClient(client, s3store.Options{Bucket: "results"}, mocks.NewMockLogger(ctrl))

		_, err := store.LoadAll(context.Background(), testID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})

	t.Run("permanent list failure", func(t *testing.T) {
		client := newFakeClient()
		client.listErr = minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}
		store := s3store.NewWithClient(client, s3store.Options{Bucket: "results"}, mocks.NewMockLogger(ctrl))

		_, err := store.LoadAll(context.Background(), testID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrBackendUnavailable)
		assert.Contains(t, err.Error(), domain.ErrStoreReadFailed.Error())
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := newFakeClient()
		store := s3store.NewWithClient(client, s3store.Options{Bucket: "results"}, mocks.NewMockLogger(ctrl))
		require.NoError(t, store.Append(context.Background(), testID, scanResult("1.0.0")))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.LoadAll(ctx, testID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := s3store.New(s3store.Options{}, mocks.NewMockLogger(ctrl))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrMissingBackendSetting.Error())
	})
}
