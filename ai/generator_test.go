package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atriumdata/docpipe/ai"
	"github.com/atriumdata/docpipe/ai/mock"
	"github.com/atriumdata/docpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedDocumentSkipsBlankInput(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := ai.NewGenerator(embedder)

	for _, text := range []string{"", "   ", "\n\t  "} {
		vector, err := generator.EmbedDocument(context.Background(), text)
		require.NoError(t, err)
		assert.Nil(t, vector)
	}

	// Blank input must never reach the embedding service.
	assert.Equal(t, 0, embedder.TextCalls())
}

func TestEmbedDocumentReturnsVector(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := ai.NewGenerator(embedder)

	vector, err := generator.EmbedDocument(context.Background(), "net operating income")
	require.NoError(t, err)
	assert.Len(t, vector, 384)
	assert.Equal(t, 1, embedder.TextCalls())
}

func TestEmbedDocumentPropagatesError(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("service unavailable")
	}
	generator := ai.NewGenerator(embedder)

	_, err := generator.EmbedDocument(context.Background(), "some text")
	assert.Error(t, err)
}

func TestEmbedChunksPreservesOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := ai.NewGenerator(embedder)

	chunks := []string{"alpha", "beta", "gamma"}
	vectors, err := generator.EmbedChunks(context.Background(), chunks)
	require.NoError(t, err)
	require.Len(t, vectors, len(chunks))

	// The mock is deterministic per input, so result[i] must equal the
	// vector generated for input[i] individually.
	for i, chunk := range chunks {
		single := mock.NewMockEmbedder()
		want, err := single.EmbedText(context.Background(), chunk)
		require.NoError(t, err)
		assert.Equal(t, want, vectors[i], "vector order diverged at index %d", i)
	}
}

func TestEmbedChunksEmptyInput(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := ai.NewGenerator(embedder)

	vectors, err := generator.EmbedChunks(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
	assert.Equal(t, 0, embedder.BatchCalls())
}

func TestEmbedChunksCountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{0.1}}, nil // one vector for two inputs
	}
	generator := ai.NewGenerator(embedder)

	_, err := generator.EmbedChunks(context.Background(), []string{"a", "b"})
	assert.ErrorIs(t, err, core.ErrEmbeddingMismatch)
}

func TestEmbedChunksAtomicFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("rate limited")
	}
	generator := ai.NewGenerator(embedder)

	vectors, err := generator.EmbedChunks(context.Background(), []string{"a", "b", "c"})
	assert.Error(t, err)
	assert.Nil(t, vectors)
}
