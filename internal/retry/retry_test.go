package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	BaseWait = time.Millisecond
}

func TestDoSuccess(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 3, func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDoRetryThenSuccess(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDoExhausted(t *testing.T) {
	sentinel := errors.New("bucket unavailable")
	calls := 0
	_, err := Do(context.Background(), 2, func() (any, error) {
		calls++
		return nil, sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, 5, func() (string, error) {
		calls++
		cancel()
		return "", errors.New("boom")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoZeroAttempts(t *testing.T) {
	calls := 0
	_, _ = Do(context.Background(), 0, func() (string, error) {
		calls++
		return "", errors.New("x")
	})
	assert.Equal(t, 1, calls)
}
