package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/cinematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	a, err := m.EmbedText(ctx, "alien")
	require.NoError(t, err)
	b, err := m.EmbedText(ctx, "alien")
	require.NoError(t, err)
	c, err := m.EmbedText(ctx, "aliens")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, DefaultDimensions)
	assert.True(t, core.IsUnit(a))
	assert.Equal(t, 3, m.CallCount())
}

func TestMockEmbedder_BatchMatchesSingle(t *testing.T) {
	m := &MockEmbedder{Dimensions: 8}
	ctx := context.Background()

	batch, err := m.EmbedTexts(ctx, []string{"one", "two"})
	require.NoError(t, err)
	single, err := m.EmbedText(ctx, "two")
	require.NoError(t, err)

	assert.Equal(t, single, batch[1])
	assert.Equal(t, 1, m.BatchCallCount())
	assert.Equal(t, 2, m.CallCount())
}

func TestMockEmbedder_Injection(t *testing.T) {
	m := NewMockEmbedder()
	boom := errors.New("boom")
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "bad" {
			return nil, boom
		}
		return []float32{1, 0}, nil
	}

	vectors, err := m.EmbedTexts(context.Background(), []string{"ok"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}}, vectors)

	_, err = m.EmbedTexts(context.Background(), []string{"ok", "bad"})
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	assert.Nil(t, m.EmbedTextFunc)
}
