package search

import "errors"

var (
	// ErrVectorSearcherRequired is returned when a vector searcher is not provided.
	ErrVectorSearcherRequired = errors.New("vector searcher required")

	// ErrSQLRunnerRequired is returned when a SQL runner is not provided.
	ErrSQLRunnerRequired = errors.New("sql runner required")

	// ErrGeneratorRequired is returned when an embedding generator is not provided.
	ErrGeneratorRequired = errors.New("embedding generator required")

	// ErrNoEmbedding is returned when the embedding service yields no
	// vector for a non-blank prompt.
	ErrNoEmbedding = errors.New("embedding service returned no embedding for prompt")
)
