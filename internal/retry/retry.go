package retry

import (
	"context"
	"fmt"
	"time"
)

// BaseWait is the pause after the first failed attempt; attempt i waits
// BaseWait*(i+1).
var BaseWait = 500 * time.Millisecond

// Do calls fn up to attempts times, backing off linearly between failures.
// It stops early when ctx is done.
func Do[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}

		wait := BaseWait * time.Duration(i+1)
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("after %d attempts: %w", i+1, ctx.Err())
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
