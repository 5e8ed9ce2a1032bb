package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Policy is a bounded retry schedule. Only errors accepted by Retryable are
// retried; anything else is returned on the attempt that produced it.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Backoff     func(attempt int, base time.Duration) time.Duration
	Retryable   func(error) bool
	Sleep       Sleeper
	// OnRetry, when set, observes each failed attempt that will be retried.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// ErrExhausted wraps the last error once MaxAttempts is reached.
var ErrExhausted = errors.New("retry attempts exhausted")

// Linear waits attempt × base after the given (1-based) attempt.
func Linear(attempt int, base time.Duration) time.Duration {
	return time.Duration(attempt) * base
}

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// attempts run out or ctx is cancelled.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = Linear
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := fn(ctx, attempt)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}
		if attempt == maxAttempts {
			break
		}

		wait := backoff(attempt, p.BaseDelay)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, maxAttempts, lastErr)
}
