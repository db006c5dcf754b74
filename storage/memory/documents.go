// Package memory provides thread-safe in-process implementations of the
// storage interfaces, used by tests and local development runs where no
// hosted storage project is available.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
	"github.com/google/uuid"
)

// Ensure DocumentStore implements the interface.
var _ storage.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of storage.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]core.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]core.Document),
	}
}

// CreateDocument stores a new document, generating its ID and timestamps.
func (s *DocumentStore) CreateDocument(_ context.Context, doc *core.Document) (*core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.documents[stored.ID] = stored
	return &stored, nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &doc, nil
}

// UpdateDocument applies a partial update. Last writer wins; concurrent
// updates to the same document are not coordinated.
func (s *DocumentStore) UpdateDocument(_ context.Context, id string, update storage.DocumentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return storage.ErrNotFound
	}

	if update.Status != nil {
		doc.Status = *update.Status
	}
	if update.StoragePath != nil {
		doc.StoragePath = *update.StoragePath
	}
	if update.ParsedJSON != nil {
		doc.ParsedJSON = update.ParsedJSON
	}
	doc.UpdatedAt = time.Now().UTC()

	s.documents[id] = doc
	return nil
}
