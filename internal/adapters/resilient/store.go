// Package resilient decorates a scan result store with per-call timeouts and
// retries of transient failures.
package resilient

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Config configures timeouts and retries.
type Config struct {
	// Timeout bounds a single attempt. Default: 30s.
	Timeout time.Duration

	// MaxAttempts is the number of attempts including the first. Default: 3.
	MaxAttempts int

	// InitialDelay is the delay before the first retry. Default: 100ms.
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries. Default: 5s.
	MaxDelay time.Duration
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = def.InitialDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.MaxDelay < c.InitialDelay {
		c.MaxDelay = c.InitialDelay
	}
	return c
}

// Store wraps a ports.ScanResultStore. Only errors classified as
// domain.ErrBackendUnavailable are retried; an attempt that exceeds the
// timeout is reported as unavailable.
type Store struct {
	next   ports.ScanResultStore
	config Config
	logger ports.Logger
}

// New wraps next. Zero fields of config take their defaults.
func New(next ports.ScanResultStore, config Config, logger ports.Logger) *Store {
	return &Store{
		next:   next,
		config: config.withDefaults(),
		logger: logger,
	}
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.config
}

// Append implements ports.ScanResultStore.
func (s *Store) Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	return s.execute(ctx, "append", func(ctx context.Context) error {
		return s.next.Append(ctx, id, result)
	})
}

// LoadAll implements ports.ScanResultStore.
func (s *Store) LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	var results []domain.ScanResult
	err := s.execute(ctx, "load_all", func(ctx context.Context) error {
		var err error
		results, err = s.next.LoadAll(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) execute(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		err := s.attempt(ctx, op, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if !errors.Is(err, domain.ErrBackendUnavailable) || attempt == s.config.MaxAttempts {
			break
		}

		delay := s.delay(attempt)
		s.logger.Warn("retrying scan result store call", "op", op, "attempt", attempt, "delay", delay.String())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}

	return lastErr
}

func (s *Store) attempt(ctx context.Context, op string, fn func(context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	err := fn(attemptCtx)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrBackendUnavailable) {
		return err
	}

	if domain.IsContextError(err) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return domain.NewUnavailableError(op, zerr.With(err, "timeout", s.config.Timeout.String()))
	}

	return err
}

// delay returns the exponential backoff for attempt with up to 25% jitter.
func (s *Store) delay(attempt int) time.Duration {
	delay := s.config.InitialDelay << (attempt - 1)
	if delay <= 0 || delay > s.config.MaxDelay {
		delay = s.config.MaxDelay
	}

	if quarter := int64(delay / 4); quarter > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(quarter))
	}

	return delay
}
