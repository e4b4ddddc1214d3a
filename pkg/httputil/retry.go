package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts  int           // total attempts including the first; values below 1 mean 1
	InitialDelay time.Duration // wait before the second attempt
	MaxDelay     time.Duration // cap for the doubled delay; 0 means uncapped
}

// DefaultPolicy is 3 attempts with 1 second initial delay (doubling each retry, capped at 30s).
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: 30 * time.Second}
}

// Retry executes fn until it succeeds, returns a non-retryable error, or the
// policy's attempt budget is spent. fn receives the 1-based attempt number.
//
// It returns the number of attempts started and the last error. Once ctx is
// done no further attempt is started and ctx.Err() is returned; an attempt
// already running is not interrupted by Retry itself.
func Retry(ctx context.Context, p Policy, fn func(attempt int) error) (int, error) {
	attempts := max(p.MaxAttempts, 1)
	delay := p.InitialDelay
	var lastErr error

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := fn(i + 1); err == nil {
			return i + 1, nil
		} else if lastErr = err; !IsRetryable(err) {
			return i + 1, err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return i + 1, ctx.Err()
			case <-time.After(delay):
				delay *= 2
				if p.MaxDelay > 0 && delay > p.MaxDelay {
					delay = p.MaxDelay
				}
			}
		}
	}
	return attempts, lastErr
}

// RetryWithBackoff is a convenience wrapper around [Retry] with [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	_, err := Retry(ctx, DefaultPolicy(), func(int) error { return fn() })
	return err
}
