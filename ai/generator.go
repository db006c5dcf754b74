package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atriumdata/docpipe/core"
)

// Generator applies pipeline embedding policy on top of an Embedder.
//
// Blank or whitespace-only input yields no vector rather than a service
// call. Batch results preserve input order and are atomic: any service
// error fails the whole batch, and a count mismatch between inputs and
// returned vectors is fatal.
type Generator struct {
	embedder Embedder
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// NewGenerator creates a Generator delegating to the given embedder.
func NewGenerator(embedder Embedder, opts ...GeneratorOption) *Generator {
	g := &Generator{
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "embedding-generator")
	return g
}

// EmbedDocument generates a single whole-document embedding.
// Returns (nil, nil) for blank input without calling the service.
func (g *Generator) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		g.logger.Debug("skipping embedding for blank text")
		return nil, nil
	}

	vector, err := g.embedder.EmbedText(ctx, text)
	if err != nil {
		g.logger.Error("failed to generate document embedding", "err", err)
		return nil, err
	}
	if len(vector) == 0 {
		return nil, nil
	}
	return vector, nil
}

// EmbedChunks generates one embedding per chunk, preserving order.
// The call is atomic: on error no vectors are returned, and a result
// count differing from the input count yields core.ErrEmbeddingMismatch.
func (g *Generator) EmbedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	g.logger.Debug("generating chunk embeddings", "chunks", len(chunks))
	vectors, err := g.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		g.logger.Error("failed to generate chunk embeddings", "chunks", len(chunks), "err", err)
		return nil, err
	}

	if len(vectors) != len(chunks) {
		g.logger.Error("embedding count mismatch", "expected", len(chunks), "received", len(vectors))
		return nil, core.ErrEmbeddingMismatch
	}

	return vectors, nil
}
