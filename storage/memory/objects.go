package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atriumdata/docpipe/storage"
)

var _ storage.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is an in-memory implementation of storage.ObjectStore.
// Signed URLs use a memory:// scheme and are only meaningful to tests.
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewObjectStore creates a new in-memory object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string][]byte),
	}
}

// Upload stores the binary at path, overwriting any existing object.
func (s *ObjectStore) Upload(_ context.Context, path, _ string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[path] = stored
	return nil
}

// SignedURL returns a fake time-limited URL for the stored object.
func (s *ObjectStore) SignedURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[path]; !ok {
		return "", storage.ErrNotFound
	}
	return fmt.Sprintf("memory://documents/%s?expires=%d", path, int(expiresIn.Seconds())), nil
}

// Get returns the stored bytes for a path. Test helper.
func (s *ObjectStore) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}
