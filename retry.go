package gotdict

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// RetryConfig holds configuration for retrying remote translation calls.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig keeps retries inside DefaultTranslationTimeout.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes fn with exponential backoff while it returns a
// retryable error. The context deadline always wins over the schedule.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return zero, err
		}

		if attempt < cfg.MaxRetries {
			delay := min(cfg.BaseDelay*time.Duration(1<<attempt), cfg.MaxDelay)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether err is a BackendError marked retryable.
// Context errors are never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Retryable
	}
	return false
}

// RetryableBackend wraps a TranslationBackend with retry logic.
type RetryableBackend struct {
	backend TranslationBackend
	config  RetryConfig
	logger  *slog.Logger
}

// NewRetryableBackend creates a backend that retries transient failures.
func NewRetryableBackend(backend TranslationBackend, cfg RetryConfig) *RetryableBackend {
	return &RetryableBackend{
		backend: backend,
		config:  cfg,
		logger:  slog.Default().With("component", "retry"),
	}
}

// Translate implements TranslationBackend with retry logic.
func (b *RetryableBackend) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	attempt := 0
	return WithRetry(ctx, b.config, func() (string, error) {
		if attempt > 0 {
			b.logger.DebugContext(ctx, "retrying translation", "attempt", attempt)
		}
		attempt++
		return b.backend.Translate(ctx, req)
	})
}
