package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/provcache/internal/adapters/telemetry"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var testID = domain.Identifier{Type: "NPM", Name: "left-pad", Version: "1.3.0"}

type harness struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	next   *mocks.MockScanResultStore
	store  *telemetry.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	ctrl := gomock.NewController(t)
	next := mocks.NewMockScanResultStore(ctrl)

	store, err := telemetry.New(next, tp.Tracer("test"), mp.Meter("test"))
	require.NoError(t, err)

	return &harness{spans: spans, reader: reader, next: next, store: store}
}

func (h *harness) metrics(t *testing.T) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	found := findMetric(rm, name)
	require.NotNil(t, found, "metric %s not found", name)

	sum, ok := found.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", found.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestStore_LoadAll(t *testing.T) {
	h := newHarness(t)

	results := []domain.ScanResult{{Summary: domain.ScanSummary{FileCount: 1}}, {Summary: domain.ScanSummary{FileCount: 2}}}
	h.next.EXPECT().LoadAll(gomock.Any(), testID).Return(results, nil)

	got, err := h.store.LoadAll(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, results, got)

	spans := h.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, telemetry.SpanLoadAll, spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("provcache.id", "NPM::left-pad:1.3.0"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("provcache.records", 2))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	rm := h.metrics(t)
	assert.Equal(t, int64(1), sumOf(t, rm, telemetry.MetricCalls))
	assert.Equal(t, int64(2), sumOf(t, rm, telemetry.MetricRecordsLoaded))

	duration := findMetric(rm, telemetry.MetricDuration)
	require.NotNil(t, duration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestStore_AppendError(t *testing.T) {
	h := newHarness(t)

	failure := domain.NewUnavailableError("append", errors.New("connection refused"))
	h.next.EXPECT().Append(gomock.Any(), testID, gomock.Any()).Return(failure)

	err := h.store.Append(context.Background(), testID, domain.ScanResult{Scanner: domain.ScannerDetails{Name: "ScanCode"}})
	require.ErrorIs(t, err, domain.ErrBackendUnavailable)

	spans := h.spans.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, telemetry.SpanAppend, spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("provcache.scanner", "ScanCode"))

	rm := h.metrics(t)
	assert.Equal(t, int64(1), sumOf(t, rm, telemetry.MetricCalls))
	assert.Equal(t, int64(1), sumOf(t, rm, telemetry.MetricErrors))

	errs := findMetric(rm, telemetry.MetricErrors).Data.(metricdata.Sum[int64])
	kind, ok := errs.DataPoints[0].Attributes.Value("kind")
	require.True(t, ok)
	assert.Equal(t, "unavailable", kind.AsString())
}

func TestNewFromGlobal(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockScanResultStore(ctrl)
	next.EXPECT().LoadAll(gomock.Any(), testID).Return([]domain.ScanResult{}, nil)

	store, err := telemetry.NewFromGlobal(next)
	require.NoError(t, err)

	_, err = store.LoadAll(context.Background(), testID)
	require.NoError(t, err)
}
