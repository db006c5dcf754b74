package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
	"github.com/google/uuid"
)

var (
	_ storage.ChunkStore     = (*ChunkStore)(nil)
	_ storage.VectorSearcher = (*ChunkStore)(nil)
)

// ChunkStore is an in-memory implementation of storage.ChunkStore that
// also serves nearest-neighbor search over the stored vectors using
// cosine similarity.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]core.Chunk // keyed by document ID
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string][]core.Chunk),
	}
}

// DeleteChunks removes all chunks for a document. A no-op when none exist.
func (s *ChunkStore) DeleteChunks(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, documentID)
	return nil
}

// InsertChunks stores a batch of chunks, generating IDs.
func (s *ChunkStore) InsertChunks(_ context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		stored := *chunk
		if stored.ID == "" {
			stored.ID = uuid.NewString()
		}
		s.chunks[stored.DocumentID] = append(s.chunks[stored.DocumentID], stored)
	}
	return nil
}

// ByDocument returns the chunks stored for a document, ordered by index.
// Test helper.
func (s *ChunkStore) ByDocument(documentID string) []core.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Chunk, len(s.chunks[documentID]))
	copy(out, s.chunks[documentID])
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out
}

// MatchChunks ranks all stored chunks by cosine similarity to the query
// embedding, returning up to limit matches scoring >= threshold, highest
// first. Equal scores keep insertion order so results are deterministic.
func (s *ChunkStore) MatchChunks(_ context.Context, embedding []float32, limit int, threshold float64) ([]core.VectorMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []core.VectorMatch
	for _, chunks := range s.chunks {
		for _, chunk := range chunks {
			score := cosineSimilarity(embedding, chunk.Embedding)
			if score < threshold {
				continue
			}
			matches = append(matches, core.VectorMatch{
				ID:         chunk.ID,
				DocumentID: chunk.DocumentID,
				ChunkIndex: chunk.ChunkIndex,
				Chunk:      chunk.Content,
				Score:      score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// cosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched dimensions or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
