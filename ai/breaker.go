package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// StateChangeFunc observes circuit breaker transitions.
type StateChangeFunc func(name string, from, to gobreaker.State)

// BreakerEmbedder fails fast with gobreaker.ErrOpenState while the wrapped
// embedder keeps failing.
type BreakerEmbedder struct {
	inner  Embedder
	single *gobreaker.CircuitBreaker[[]float32]
	batch  *gobreaker.CircuitBreaker[[][]float32]
	logger *slog.Logger
}

var _ Embedder = (*BreakerEmbedder)(nil)

// NewBreakerEmbedder wraps inner with circuit breakers that open after
// failures consecutive errors and stay open for timeout. onChange may be nil.
func NewBreakerEmbedder(inner Embedder, name string, failures uint32, timeout time.Duration, onChange StateChangeFunc) (*BreakerEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if failures < 1 {
		failures = 1
	}

	logger := slog.Default().With("component", "embedder-breaker")

	settings := func(suffix string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name + "-" + suffix,
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			// A caller giving up is not a backend failure.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
				if onChange != nil {
					onChange(name, from, to)
				}
			},
		}
	}

	return &BreakerEmbedder{
		inner:  inner,
		single: gobreaker.NewCircuitBreaker[[]float32](settings("single")),
		batch:  gobreaker.NewCircuitBreaker[[][]float32](settings("batch")),
		logger: logger,
	}, nil
}

// EmbedText embeds one text through the single-text breaker.
func (b *BreakerEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return b.single.Execute(func() ([]float32, error) {
		return b.inner.EmbedText(ctx, text)
	})
}

// EmbedTexts embeds a batch through the batch breaker.
func (b *BreakerEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return b.batch.Execute(func() ([][]float32, error) {
		return b.inner.EmbedTexts(ctx, texts)
	})
}

// State reports the single-text breaker state, which guards the request path.
func (b *BreakerEmbedder) State() gobreaker.State {
	return b.single.State()
}

// IsBreakerOpen reports whether err was produced by an open or saturated breaker.
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
