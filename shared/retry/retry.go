// Package retry provides a small exponential-backoff helper for transient
// operations. Conversion itself is never retried: a corrupt image does not
// become valid on the second attempt.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do calls fn up to attempts times, doubling the delay between attempts
// starting from baseDelay. It stops early when fn succeeds or the context
// is done, and returns the last error otherwise.
func Do(ctx context.Context, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("retry: attempts must be at least 1, got %d", attempts)
	}

	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("retry: %d attempts exhausted: %w", attempts, err)
}
