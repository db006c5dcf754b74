package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/atriumdata/docpipe/ai"
	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
)

// DefaultLimit caps vector matches when the caller doesn't specify one.
const DefaultLimit = 5

// Searcher is the retrieval orchestrator: vector similarity answers plus
// a structured SQL passthrough.
type Searcher struct {
	vectors   storage.VectorSearcher
	sql       storage.SQLRunner
	generator *ai.Generator
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSearcher creates a retrieval orchestrator.
func NewSearcher(vectors storage.VectorSearcher, sql storage.SQLRunner, generator *ai.Generator, opts ...Option) (*Searcher, error) {
	if vectors == nil {
		return nil, ErrVectorSearcherRequired
	}
	if sql == nil {
		return nil, ErrSQLRunnerRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Searcher{
		vectors:   vectors,
		sql:       sql,
		generator: generator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "searcher")
	return s, nil
}

// Answer embeds the prompt, performs a nearest-neighbor search over
// stored chunk vectors, and returns up to limit matches scoring at least
// threshold, ordered by descending similarity. A non-positive limit uses
// DefaultLimit.
func (s *Searcher) Answer(ctx context.Context, prompt string, limit int, threshold float64) (*core.QueryResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, core.ErrEmptyPrompt
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	embedding, err := s.generator.EmbedDocument(ctx, prompt)
	if err != nil {
		s.logger.Error("error generating embedding for prompt", "err", err)
		return nil, err
	}
	if embedding == nil {
		// Blank prompts were rejected above, so this is a service fault.
		return nil, ErrNoEmbedding
	}

	matches, err := s.vectors.MatchChunks(ctx, embedding, limit, threshold)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	// The service contract already promises ranked, filtered results;
	// enforce it anyway so callers can rely on the ordering. The sort is
	// stable, keeping result order deterministic for equal scores.
	filtered := matches[:0]
	for _, match := range matches {
		if match.Score >= threshold {
			filtered = append(filtered, match)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Score > filtered[j].Score })
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	if filtered == nil {
		filtered = []core.VectorMatch{}
	}

	s.logger.Debug("answered prompt", "matches", len(filtered), "limit", limit, "threshold", threshold)
	return &core.QueryResult{
		Prompt:        prompt,
		VectorMatches: filtered,
	}, nil
}

// ExecuteSQL forwards literal SQL text and bound parameters to the
// relational service and returns the raw rows. No parsing or validation
// happens here; the trust boundary belongs to the caller.
func (s *Searcher) ExecuteSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptySQL
	}
	return s.sql.ExecuteSQL(ctx, query, params)
}
