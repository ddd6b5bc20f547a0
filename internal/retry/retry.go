// Package retry provides bounded exponential backoff for calls to
// external embedding and generation providers.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Default retry policy for provider adapters.
const (
	// DefaultAttempts is the total number of attempts (first try included).
	DefaultAttempts = 3

	// DefaultBaseDelay is the backoff base delay.
	DefaultBaseDelay = 500 * time.Millisecond

	// maxBackoff caps a single backoff interval.
	maxBackoff = 30 * time.Second
)

// Backoff returns the exponential backoff delay for the given attempt,
// with random jitter of up to 25% in either direction. Attempt 0 (the
// first try) has no delay.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30 // avoid overflow in the shift
	}

	backoff := base * time.Duration(1<<uint(attempt-1))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// Do runs fn up to attempts times, sleeping with exponential backoff
// between tries. It returns nil on the first success, the last error once
// attempts are exhausted, and ctx.Err() if the context is cancelled while
// waiting. fn is never retried after a context cancellation.
func Do(ctx context.Context, attempts int, base time.Duration, fn func(ctx context.Context) error) error {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if base <= 0 {
		base = DefaultBaseDelay
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if delay := Backoff(base, attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}

	return lastErr
}
