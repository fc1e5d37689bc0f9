package catalogue

import (
	"context"
	"log/slog"
	"time"
)

// maxRetryDelay caps the doubling backoff between embedding attempts.
const maxRetryDelay = 30 * time.Second

// retryPolicy governs the startup bulk embedding call.
type retryPolicy struct {
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// backoff returns the wait before the attempt following attempt n (1-based).
func (p retryPolicy) backoff(n int) time.Duration {
	d := p.delay
	for i := 1; i < n && d < maxRetryDelay; i++ {
		d *= 2
	}
	return min(d, maxRetryDelay)
}

// run calls embed until it succeeds, the attempts are exhausted or ctx ends.
// The error of the final attempt is returned unchanged.
func (p retryPolicy) run(ctx context.Context, embed func(context.Context) error) error {
	if p.attempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}

	var err error
	for n := 1; ; n++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = embed(ctx); err == nil {
			if n > 1 {
				logger.Info("catalogue embedded after retry", "attempt", n)
			}
			return nil
		}
		if n == p.attempts {
			return err
		}

		wait := p.backoff(n)
		logger.Warn("catalogue embedding failed, retrying",
			"attempt", n, "attempts", p.attempts, "wait", wait, "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
