package memory

import (
	"context"
	"sync"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
	"github.com/google/uuid"
)

var _ storage.ExtractedStore = (*ExtractedStore)(nil)

// ExtractedStore is an in-memory implementation of storage.ExtractedStore.
type ExtractedStore struct {
	mu      sync.RWMutex
	records map[string]core.ExtractedRecord
}

// NewExtractedStore creates a new in-memory extracted-record store.
func NewExtractedStore() *ExtractedStore {
	return &ExtractedStore{
		records: make(map[string]core.ExtractedRecord),
	}
}

// InsertExtractedRecord stores the record, generating its ID.
func (s *ExtractedStore) InsertExtractedRecord(_ context.Context, record *core.ExtractedRecord) (*core.ExtractedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	stored.ID = uuid.NewString()
	s.records[stored.ID] = stored
	return &stored, nil
}

// ByDocument returns the records stored for a document. Test helper.
func (s *ExtractedStore) ByDocument(documentID string) []core.ExtractedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.ExtractedRecord
	for _, record := range s.records {
		if record.DocumentID == documentID {
			out = append(out, record)
		}
	}
	return out
}
