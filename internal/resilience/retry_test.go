package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoVal_SucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := DoVal(context.Background(), RetryConfig{MaxAttempts: 3}, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesTransientThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Millisecond),
	}
	got, err := DoVal(context.Background(), cfg, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", NewTransientError(eris.New("boom"), 503)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoVal_StopsOnNonTransient(t *testing.T) {
	t.Parallel()

	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Millisecond),
	}
	_, err := DoVal(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, eris.New("bad request")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	retries := []int{}
	cfg := RetryConfig{
		MaxAttempts: 4,
		Backoff:     LinearBackoff(time.Millisecond),
		OnRetry: func(attempt int, err error) {
			retries = append(retries, attempt)
		},
	}
	_, err := DoVal(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, NewTransientError(eris.New("down"), 502)
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []int{1, 2, 3}, retries)
}

func TestDoVal_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	cfg := RetryConfig{MaxAttempts: 5, Backoff: LinearBackoff(time.Millisecond)}
	_, err := DoVal(ctx, cfg, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(eris.New("down"), 503)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_WrapsDoVal(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), RetryConfig{MaxAttempts: 2, Backoff: LinearBackoff(time.Millisecond)}, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestLinearBackoff(t *testing.T) {
	t.Parallel()

	b := LinearBackoff(3 * time.Second)
	assert.Equal(t, 3*time.Second, b(1))
	assert.Equal(t, 6*time.Second, b(2))
	assert.Equal(t, 15*time.Second, b(5))
	assert.Equal(t, 3*time.Second, b(0)) // clamped
}

func TestCustomShouldRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	cfg := RetryConfig{
		MaxAttempts: 3,
		Backoff:     LinearBackoff(time.Millisecond),
		ShouldRetry: func(err error) bool { return true },
	}
	_, err := DoVal(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, eris.New("not transient but retried anyway")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
