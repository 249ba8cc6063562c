package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a backend failure as transient: a connection refused
// by a Redis or MongoDB server that is still starting, or an HTTP 503.
type RetryableError struct{ Err error }

// Retryable wraps err so that [Backoff.Do] tries again. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or an error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation a fixed number of times, doubling the wait
// after every failed attempt.
type Backoff struct {
	Attempts int           // total attempts, at least one
	Delay    time.Duration // wait before the second attempt
}

// DefaultBackoff is used when connecting to cache and store backends.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns an error not marked [Retryable], or
// the attempts run out. It returns the last error, or ctx.Err() when ctx is
// cancelled while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
