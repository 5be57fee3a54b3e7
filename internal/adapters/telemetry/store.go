// Package telemetry decorates a scan result store with OpenTelemetry traces
// and metrics.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstrumentationName identifies the tracer and meter of this package.
const InstrumentationName = "go.trai.ch/provcache"

// Span and metric names.
const (
	SpanAppend  = "scanstore.append"
	SpanLoadAll = "scanstore.load_all"

	MetricCalls         = "provcache.store.calls"
	MetricErrors        = "provcache.store.errors"
	MetricDuration      = "provcache.store.duration_ms"
	MetricRecordsLoaded = "provcache.store.records_loaded"
)

// Store wraps a ports.ScanResultStore with one span per call and call,
// error, duration and volume metrics.
type Store struct {
	next   ports.ScanResultStore
	tracer trace.Tracer

	calls         metric.Int64Counter
	errorCount    metric.Int64Counter
	duration      metric.Float64Histogram
	recordsLoaded metric.Int64Counter
}

// NewFromGlobal wraps next using the globally registered providers.
func NewFromGlobal(next ports.ScanResultStore) (*Store, error) {
	return New(next, otel.Tracer(InstrumentationName), otel.Meter(InstrumentationName))
}

// New wraps next using the given tracer and meter.
func New(next ports.ScanResultStore, tracer trace.Tracer, meter metric.Meter) (*Store, error) {
	calls, err := meter.Int64Counter(
		MetricCalls,
		metric.WithDescription("Number of scan result store calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create calls counter")
	}

	errs, err := meter.Int64Counter(
		MetricErrors,
		metric.WithDescription("Number of failed scan result store calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create errors counter")
	}

	duration, err := meter.Float64Histogram(
		MetricDuration,
		metric.WithDescription("Scan result store call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create duration histogram")
	}

	recordsLoaded, err := meter.Int64Counter(
		MetricRecordsLoaded,
		metric.WithDescription("Number of scan results returned by loads"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create records counter")
	}

	return &Store{
		next:          next,
		tracer:        tracer,
		calls:         calls,
		errorCount:    errs,
		duration:      duration,
		recordsLoaded: recordsLoaded,
	}, nil
}

// Append implements ports.ScanResultStore.
func (s *Store) Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	ctx, span := s.tracer.Start(ctx, SpanAppend, trace.WithAttributes(
		attribute.String("provcache.id", id.String()),
		attribute.String("provcache.scanner", result.Scanner.Name),
	))
	defer span.End()

	start := time.Now()
	err := s.next.Append(ctx, id, result)
	s.record(ctx, span, "append", start, err)

	return err
}

// LoadAll implements ports.ScanResultStore.
func (s *Store) LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	ctx, span := s.tracer.Start(ctx, SpanLoadAll, trace.WithAttributes(
		attribute.String("provcache.id", id.String()),
	))
	defer span.End()

	start := time.Now()
	results, err := s.next.LoadAll(ctx, id)
	s.record(ctx, span, "load_all", start, err)

	if err == nil {
		span.SetAttributes(attribute.Int("provcache.records", len(results)))
		s.recordsLoaded.Add(ctx, int64(len(results)))
	}

	return results, err
}

func (s *Store) record(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	opt := metric.WithAttributes(attribute.String("op", op))

	s.calls.Add(ctx, 1, opt)
	s.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, opt)

	if err != nil {
		s.errorCount.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("kind", errorKind(err)),
		))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrBackendUnavailable):
		return domain.BackendUnavailable.String()
	case errors.Is(err, domain.ErrRecordCorrupt):
		return domain.BackendCorrupt.String()
	default:
		return "other"
	}
}
