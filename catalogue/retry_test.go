package catalogue

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_FirstAttempt(t *testing.T) {
	calls := 0
	p := retryPolicy{attempts: 3, delay: time.Millisecond}

	err := p.run(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_EventualSuccessLogsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := retryPolicy{attempts: 5, delay: time.Millisecond, logger: logger}

	calls := 0
	err := p.run(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, buf.String(), "catalogue embedding failed, retrying")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "catalogue embedded after retry")
}

func TestRetryPolicy_Exhausted(t *testing.T) {
	failure := errors.New("service unavailable")
	p := retryPolicy{attempts: 3, delay: time.Millisecond}

	calls := 0
	err := p.run(context.Background(), func(context.Context) error {
		calls++
		return failure
	})
	assert.Same(t, failure, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := retryPolicy{attempts: 10, delay: 10 * time.Millisecond}

	calls := 0
	err := p.run(ctx, func(context.Context) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("timeout")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicy_InvalidAttempts(t *testing.T) {
	err := retryPolicy{}.run(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := retryPolicy{attempts: 10, delay: time.Second}

	assert.Equal(t, time.Second, p.backoff(1))
	assert.Equal(t, 2*time.Second, p.backoff(2))
	assert.Equal(t, 8*time.Second, p.backoff(4))
	assert.Equal(t, maxRetryDelay, p.backoff(6))
	assert.Equal(t, maxRetryDelay, p.backoff(60))
}
