package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/gdlkit/pkg/cache"
)

// Retry calls fn up to attempts times, waiting delay before the second
// attempt and doubling it after each failure. Only errors marked with
// [cache.Retryable] are retried.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return cache.Backoff{Attempts: attempts, Delay: delay}.Do(ctx, fn)
}

// retryStatus reports whether a response status is worth retrying.
func retryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
