package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffPolicy_Wait(t *testing.T) {
	policy := DefaultBackoffPolicy()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.Wait(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetrier_SucceedsAfterFailures(t *testing.T) {
	var waits []time.Duration
	r := &Retrier{
		Policy: DefaultBackoffPolicy(),
		Sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, waits)
}

func TestRetrier_ExhaustsAttempts(t *testing.T) {
	var waits []time.Duration
	r := &Retrier{
		Policy: BackoffPolicy{MaxAttempts: 3, Base: 2 * time.Second},
		Sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		},
	}

	failure := errors.New("model unavailable")
	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, calls)
	// No wait after the final attempt
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, waits)
}

func TestRetrier_NoRetryOnSuccess(t *testing.T) {
	r := &Retrier{
		Policy: DefaultBackoffPolicy(),
		Sleep: func(ctx context.Context, d time.Duration) error {
			t.Fatal("sleep should not be called")
			return nil
		},
	}

	calls := 0
	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetrier_CancelledContext(t *testing.T) {
	r := NewRetrier(DefaultBackoffPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestRetrier_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Retrier{
		Policy: BackoffPolicy{MaxAttempts: 3, Base: 2 * time.Second},
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	err := r.Do(ctx, func(ctx context.Context) error {
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealSleeper_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := RealSleeper(ctx, 5*time.Second)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
