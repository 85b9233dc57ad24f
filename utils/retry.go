package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryBase is the first backoff step; it doubles on every failed attempt.
var RetryBase = 2 * time.Second

// Retry runs fn up to maxRetries times.
// It stops on the first success, waits with exponential backoff between
// failed attempts (2s, 4s, 8s...) and returns the last error once all
// attempts are used. maxRetries below 1 is treated as a single attempt.
//
// Usage:
//
//	err := utils.Retry(ctx, 3, func() error {
//	    return renderer.Render(ctx, url)
//	})
func Retry(ctx context.Context, maxRetries int, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if maxRetries == 1 {
			return lastErr
		}

		if attempt < maxRetries {
			wait := RetryBase << uint(attempt-1)
			Warn("Attempt %d/%d failed: %v, retrying in %v", attempt, maxRetries, lastErr, wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
