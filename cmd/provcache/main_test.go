package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/provcache/internal/app"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports/mocks"
	"go.trai.ch/provcache/internal/engine/pkgconfig"
	"go.trai.ch/provcache/internal/engine/scancache"
	"go.uber.org/mock/gomock"
)

type testComponents struct {
	provider ComponentProvider
	store    *mocks.MockScanResultStore
	logger   *mocks.MockLogger
	cleaned  *bool
}

func newTestComponents(t *testing.T) testComponents {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockScanResultStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	cleaned := new(bool)

	application := app.New(scancache.NewStorage(store, log), pkgconfig.NewProvider(nil), log)
	provider := func(context.Context) (*app.Components, func(), error) {
		return app.NewComponents(application, log, nil), func() { *cleaned = true }, nil
	}

	return testComponents{provider: provider, store: store, logger: log, cleaned: cleaned}
}

// TestRun_Success verifies that run returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	tc := newTestComponents(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, strings.NewReader(""), stdout, new(bytes.Buffer), tc.provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "provcache version")
	assert.True(t, *tc.cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, strings.NewReader(""), new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and return 1.
func TestRun_ExecutionError(t *testing.T) {
	tc := newTestComponents(t)

	cause := domain.NewUnavailableError("load_all", errors.New("connection refused"))
	tc.store.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil, cause)
	tc.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})

	exitCode := run(context.Background(), []string{"read", "NPM::left-pad:1.3.0"},
		strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer), tc.provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_Rejection verifies that a rejected result exits with 1 without
// logging the error a second time.
func TestRun_Rejection(t *testing.T) {
	tc := newTestComponents(t)

	document := `{"id":"NPM::left-pad:1.3.0","result":{"scanner":{"name":"ScanCode","version":"32.0.8"},"summary":{"file_count":1},"raw_result":{"files":[]}}}`
	tc.logger.EXPECT().Warn(
		"Not storing scan result for 'NPM::left-pad:1.3.0' because no provenance information is available.",
		gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
	)

	exitCode := run(context.Background(), []string{"add", "-"},
		strings.NewReader(document), new(bytes.Buffer), new(bytes.Buffer), tc.provider)

	assert.Equal(t, 1, exitCode)
}
