package pipeline

import (
	"context"
	"math"
	"time"
)

// BackoffPolicy computes retry waits as a pure function of the attempt
// number, decoupled from any clock so tests run without real waiting.
// Wait after attempt n (1-indexed) is Base^n; no wait follows the final
// attempt.
type BackoffPolicy struct {
	MaxAttempts int
	Base        time.Duration
}

// DefaultBackoffPolicy matches the pipeline defaults: 3 attempts with a
// 2-second base, yielding waits of 2s then 4s.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{MaxAttempts: 3, Base: 2 * time.Second}
}

// Wait returns the delay after a failed attempt (1-indexed):
// Base.Seconds()^attempt seconds. A non-positive attempt yields zero.
func (p BackoffPolicy) Wait(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	seconds := math.Pow(p.Base.Seconds(), float64(attempt))
	return time.Duration(seconds * float64(time.Second))
}

// Sleeper blocks for a duration or until the context is done. Injectable so
// tests substitute a recording fake.
type Sleeper func(ctx context.Context, d time.Duration) error

// RealSleeper waits on a timer, honoring context cancellation
func RealSleeper(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retrier executes an operation with bounded exponential backoff
type Retrier struct {
	Policy BackoffPolicy
	Sleep  Sleeper
}

// NewRetrier builds a Retrier with the real clock
func NewRetrier(policy BackoffPolicy) *Retrier {
	return &Retrier{Policy: policy, Sleep: RealSleeper}
}

// Do runs fn up to MaxAttempts times, sleeping Policy.Wait(attempt) between
// failures. Returns the last error once attempts are exhausted, or the
// context error if cancelled mid-wait.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.Policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt < r.Policy.MaxAttempts {
			if err := r.Sleep(ctx, r.Policy.Wait(attempt)); err != nil {
				return err
			}
		}
	}
	return lastErr
}
