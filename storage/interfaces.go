package storage

import (
	"context"
	"time"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/doctree"
)

// DocumentUpdate is a partial update to a document row. Nil fields are
// left untouched.
type DocumentUpdate struct {
	Status      *core.DocumentStatus
	StoragePath *string
	ParsedJSON  *doctree.Value
}

// DocumentStore provides operations for managing document records.
type DocumentStore interface {
	// CreateDocument inserts a new document row and returns it with the
	// generated ID and timestamps populated.
	CreateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// UpdateDocument applies a partial update to the document row.
	UpdateDocument(ctx context.Context, id string, update DocumentUpdate) error
}

// ExtractedStore persists the one-per-document extracted artifact.
type ExtractedStore interface {
	// InsertExtractedRecord inserts the record and returns it with the
	// generated ID populated.
	InsertExtractedRecord(ctx context.Context, record *core.ExtractedRecord) (*core.ExtractedRecord, error)
}

// ChunkStore provides operations for a document's chunk set.
// Re-embedding replaces the whole set: delete then insert.
type ChunkStore interface {
	// DeleteChunks removes all chunks belonging to a document.
	// Deleting for a document with no chunks is not an error.
	DeleteChunks(ctx context.Context, documentID string) error

	// InsertChunks inserts a batch of chunks.
	InsertChunks(ctx context.Context, chunks []*core.Chunk) error
}

// ObjectStore stores uploaded binaries and issues time-limited read URLs.
type ObjectStore interface {
	// Upload stores the binary at the given path, overwriting any
	// existing object at that path.
	Upload(ctx context.Context, path, contentType string, data []byte) error

	// SignedURL returns a URL granting temporary read access to the
	// object at path.
	SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
}

// VectorSearcher performs nearest-neighbor search over stored chunk vectors.
type VectorSearcher interface {
	// MatchChunks returns up to limit chunks whose similarity to the query
	// embedding is >= threshold, ordered by descending similarity.
	MatchChunks(ctx context.Context, embedding []float32, limit int, threshold float64) ([]core.VectorMatch, error)
}

// SQLRunner executes raw parameterized SQL against the relational service.
// The SQL text is forwarded verbatim; callers own the trust boundary.
type SQLRunner interface {
	ExecuteSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
