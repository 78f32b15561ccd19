// Package resilience provides bounded retry with backoff for
// infrastructure operations that may fail transiently, such as opening
// the state store. Caller mistakes (marked as client errors) and context
// cancellation are never retried.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryPolicy bounds a retried operation.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the delay before the first retry. Setting BaseDelay
	// equal to MaxDelay yields a fixed backoff.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// UseJitter randomizes each delay between 0.5x and 1.5x.
	UseJitter bool
}

// Retry runs fn until it succeeds, the policy is exhausted, or the
// context ends. The error of the last attempt is returned when all
// attempts fail; non-retryable errors are returned immediately.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	attempts := policy.MaxRetries + 1
	var lastErr error

	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(CalculateBackoff(attempt, policy)):
		}
	}

	return lastErr
}

// CalculateBackoff returns the delay before the retry following attempt
// (zero-based): BaseDelay doubled per attempt, capped at MaxDelay, with
// optional jitter.
func CalculateBackoff(attempt int, policy RetryPolicy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	max := policy.MaxDelay
	if max <= 0 {
		max = 30 * time.Second
	}

	delay := base
	for range attempt {
		delay *= 2
		if delay >= max {
			delay = max
			break
		}
	}

	if policy.UseJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	if delay > max {
		delay = max
	}
	return delay
}

// IsRetryable reports whether an error is worth retrying. Context errors
// and client errors are not; everything else is assumed transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var clientErr isClientError
	if errors.As(err, &clientErr) && clientErr.IsClientError() {
		return false
	}
	return true
}
