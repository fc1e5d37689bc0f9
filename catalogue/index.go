package catalogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/cinematch/ai"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/similarity"
)

// Index is the immutable catalogue snapshot: entries, their unit vectors,
// and their lower-cased trimmed titles, all addressed by ingestion order.
type Index struct {
	entries []core.Entry
	titles  []string
	matrix  *similarity.Matrix
}

// Option configures Build.
type Option func(*buildOptions) error

type buildOptions struct {
	maxAttempts    int
	baseDelay      time.Duration
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// WithRetry retries the bulk embedding call up to maxAttempts times with
// exponential backoff from baseDelay. Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(o *buildOptions) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		o.maxAttempts = maxAttempts
		o.baseDelay = baseDelay
		return nil
	}
}

// WithProgress writes embedding progress to w.
func WithProgress(w io.Writer) Option {
	return func(o *buildOptions) error {
		o.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// Build embeds every entry's search document in one batch call and returns
// the resulting index. Entries are copied; the caller's slice is not retained.
func Build(ctx context.Context, entries []core.Entry, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	o := &buildOptions{
		maxAttempts:    1,
		baseDelay:      time.Second,
		reportInterval: 100,
		logger:         slog.Default().With("component", "catalogue"),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if len(entries) == 0 {
		return nil, ErrEmptyCatalogue
	}

	docs := make([]string, len(entries))
	titles := make([]string, len(entries))
	for i := range entries {
		if err := core.ValidateEntry(&entries[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", core.ErrSchema, i, err)
		}
		docs[i] = SearchDocument(&entries[i])
		titles[i] = strings.ToLower(strings.TrimSpace(entries[i].Title))
	}

	var tracker *ProgressTracker
	if o.progress != nil {
		tracker = NewProgressTracker(o.progress, len(docs), o.reportInterval)
		tracker.Start()
		ctx = ai.WithProgress(ctx, tracker.Increment)
	}

	o.logger.Info("embedding catalogue", "entries", len(docs))
	start := time.Now()

	var vectors [][]float32
	policy := retryPolicy{attempts: o.maxAttempts, delay: o.baseDelay, logger: o.logger}
	err := policy.run(ctx, func(ctx context.Context) error {
		var err error
		vectors, err = embedder.EmbedTexts(ctx, docs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embedding catalogue: %w", core.ErrOracle, err)
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("%w: embedded %d of %d entries", core.ErrOracle, len(vectors), len(docs))
	}

	matrix, err := similarity.NewMatrix(vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrOracle, err)
	}

	if tracker != nil {
		tracker.Finish()
	}
	o.logger.Info("catalogue indexed", "entries", len(docs), "dim", matrix.Dim(), "elapsed", time.Since(start))

	return &Index{
		entries: append([]core.Entry(nil), entries...),
		titles:  titles,
		matrix:  matrix,
	}, nil
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entry returns the entry at position i. Callers must not modify it.
func (x *Index) Entry(i int) *core.Entry {
	return &x.entries[i]
}

// Titles returns the lower-cased trimmed titles in index order.
// Callers must not modify the slice.
func (x *Index) Titles() []string {
	return x.titles
}

// Matrix returns the similarity matrix of entry vectors.
func (x *Index) Matrix() *similarity.Matrix {
	return x.matrix
}

// Vector returns the unit vector of entry i.
func (x *Index) Vector(i int) ([]float32, error) {
	return x.matrix.Row(i)
}
