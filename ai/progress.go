package ai

import "context"

// ProgressFunc receives the number of texts embedded since the last call.
type ProgressFunc func(n int)

type progressKey struct{}

// WithProgress returns a context that carries fn. Embedders report completed
// sub-batches to it, letting callers of a single large EmbedTexts call
// observe progress.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// reportProgress calls the ProgressFunc in ctx, if any.
func reportProgress(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		fn(n)
	}
}
