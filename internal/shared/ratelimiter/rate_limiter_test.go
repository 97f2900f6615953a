package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_WithinLimitDoesNotWait(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Hour)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.WaitIfNeeded(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 3, rl.count)
}

func TestRateLimiter_WaitsWhenLimitExceeded(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50*time.Millisecond)

	start := time.Now()
	require.NoError(t, rl.WaitIfNeeded(context.Background()))
	require.NoError(t, rl.WaitIfNeeded(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.Equal(t, 1, rl.count, "count should restart after waiting")
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.lastReset = now
	rl.now = func() time.Time { return now }

	require.NoError(t, rl.WaitIfNeeded(context.Background()))

	now = now.Add(2 * time.Minute)
	require.NoError(t, rl.WaitIfNeeded(context.Background()))
	assert.Equal(t, 1, rl.count)
	assert.Equal(t, now, rl.lastReset)
}

func TestRateLimiter_ContextCancelled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	require.NoError(t, rl.WaitIfNeeded(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.WaitIfNeeded(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0, time.Hour)
	for i := 0; i < 10; i++ {
		require.NoError(t, rl.WaitIfNeeded(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rl.WaitIfNeeded(ctx), context.Canceled)
}
