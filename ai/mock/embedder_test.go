package mock_test

import (
	"context"
	"testing"

	"github.com/atriumdata/docpipe/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedTextIsDeterministic(t *testing.T) {
	a := mock.NewMockEmbedder()
	b := mock.NewMockEmbedder()

	first, err := a.EmbedText(context.Background(), "net operating income")
	require.NoError(t, err)
	second, err := b.EmbedText(context.Background(), "net operating income")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 384)

	other, err := a.EmbedText(context.Background(), "parking ratios")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestEmbedTextProducesUnitVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	vector, err := embedder.EmbedText(context.Background(), "offering memo")
	require.NoError(t, err)

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sumSquares, 1e-3)
}

func TestEmbedTextsMatchesSingleCalls(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	texts := []string{"alpha", "beta"}
	batch, err := embedder.EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	for i, text := range texts {
		single, err := mock.NewMockEmbedder().EmbedText(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single, batch[i])
	}
}

func TestCallCountersTrackMethodsSeparately(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	_, err := embedder.EmbedText(context.Background(), "one")
	require.NoError(t, err)
	_, err = embedder.EmbedText(context.Background(), "two")
	require.NoError(t, err)
	_, err = embedder.EmbedTexts(context.Background(), []string{"batch"})
	require.NoError(t, err)

	assert.Equal(t, 2, embedder.TextCalls())
	assert.Equal(t, 1, embedder.BatchCalls())
}

func TestResetClearsStateAndInjection(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1}, nil
	}
	_, err := embedder.EmbedText(context.Background(), "anything")
	require.NoError(t, err)

	embedder.Reset()

	assert.Equal(t, 0, embedder.TextCalls())
	assert.Equal(t, 0, embedder.BatchCalls())
	assert.Nil(t, embedder.EmbedTextFunc)

	vector, err := embedder.EmbedText(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, vector, 384)
}
