package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// RetryableError indicates a transient provider failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

type retrying struct {
	inner   Oracle
	retries int
}

// WithRetry wraps an oracle so transient failures are retried up to retries
// extra attempts, backing off between them. Non-retryable errors and context
// cancellation pass through immediately.
func WithRetry(inner Oracle, retries int) Oracle {
	if retries <= 0 {
		return inner
	}
	return &retrying{inner: inner, retries: retries}
}

func (r *retrying) Route(ctx context.Context, req RouteRequest) (RouteDecision, error) {
	var d RouteDecision
	err := r.do(ctx, func() error {
		var err error
		d, err = r.inner.Route(ctx, req)
		return err
	})
	return d, err
}

func (r *retrying) Synthesize(ctx context.Context, req SynthesisRequest) (Synthesis, error) {
	var s Synthesis
	err := r.do(ctx, func() error {
		var err error
		s, err = r.inner.Synthesize(ctx, req)
		return err
	})
	return s, err
}

func (r *retrying) do(ctx context.Context, call func() error) error {
	var err error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(Backoff(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = call()
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}
