package catalogue

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/cinematch/ai/mock"
	"github.com/poiesic/cinematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []core.Entry {
	return []core.Entry{
		{Title: "Star Wars", Director: "George Lucas", Year: "1977"},
		{Title: "  The Empire Strikes Back ", Director: "Irvin Kershner", Year: "1980"},
		{Title: "Heat", Director: "Michael Mann", YearBinned: "1990s"},
	}
}

func TestBuild(t *testing.T) {
	embedder := &mock.MockEmbedder{Dimensions: 16}

	index, err := Build(context.Background(), testEntries(), embedder)
	require.NoError(t, err)

	assert.Equal(t, 3, index.Len())
	assert.Equal(t, []string{"star wars", "the empire strikes back", "heat"}, index.Titles())
	assert.Equal(t, "Heat", index.Entry(2).Title)
	assert.Equal(t, 16, index.Matrix().Dim())
	assert.Equal(t, 1, embedder.BatchCallCount(), "all documents go in one batch")
	assert.Equal(t, 1, embedder.CallCount())

	for i := 0; i < index.Len(); i++ {
		v, err := index.Vector(i)
		require.NoError(t, err)
		assert.True(t, core.IsUnit(v), "row %d should be unit length", i)
	}
}

func TestBuild_NormalizesVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{3, 4}
		}
		return out, nil
	}

	index, err := Build(context.Background(), testEntries()[:1], embedder)
	require.NoError(t, err)

	v, err := index.Vector(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, v, 1e-6)
}

func TestBuild_EmbedsSearchDocuments(t *testing.T) {
	var seen []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		seen = texts
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	entries := testEntries()
	_, err := Build(context.Background(), entries, embedder)
	require.NoError(t, err)

	require.Len(t, seen, len(entries))
	for i := range entries {
		assert.Equal(t, SearchDocument(&entries[i]), seen[i])
	}
}

func TestBuild_SchemaErrors(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	_, err := Build(context.Background(), []core.Entry{{Title: "ok"}, {Title: " "}}, embedder)
	assert.ErrorIs(t, err, core.ErrSchema)
	assert.ErrorIs(t, err, core.ErrEmptyTitle)
	assert.Equal(t, 0, embedder.CallCount(), "invalid catalogue must not be embedded")

	_, err = Build(context.Background(), nil, embedder)
	assert.ErrorIs(t, err, ErrEmptyCatalogue)

	_, err = Build(context.Background(), testEntries(), nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestBuild_OracleFailure(t *testing.T) {
	boom := errors.New("model unavailable")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	_, err := Build(context.Background(), testEntries(), embedder)
	assert.ErrorIs(t, err, core.ErrOracle)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_WrongVectorCount(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	_, err := Build(context.Background(), testEntries(), embedder)
	assert.ErrorIs(t, err, core.ErrOracle)
}

func TestBuild_Retry(t *testing.T) {
	calls := 0
	embedder := &mock.MockEmbedder{Dimensions: 4}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 0, 0, 0}
		}
		return out, nil
	}

	index, err := Build(context.Background(), testEntries(), embedder, WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())
	assert.Equal(t, 2, calls)

	_, err = Build(context.Background(), testEntries(), embedder, WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestBuild_Progress(t *testing.T) {
	var buf bytes.Buffer
	embedder := &mock.MockEmbedder{Dimensions: 4}

	_, err := Build(context.Background(), testEntries(), embedder, WithProgress(&buf))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "3/3")
}

func TestBuild_CopiesEntries(t *testing.T) {
	entries := testEntries()
	index, err := Build(context.Background(), entries, &mock.MockEmbedder{Dimensions: 4})
	require.NoError(t, err)

	entries[0].Title = "changed"
	assert.Equal(t, "Star Wars", index.Entry(0).Title)
}
