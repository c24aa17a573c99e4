package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/proteincompare/backend/internal/domain"
)

// MemoryStore is an in-process catalog store, used for local development and
// tests. Documents are copied in at construction and on Put.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates a store holding a copy of docs.
func NewMemoryStore(docs map[string][]byte) *MemoryStore {
	s := &MemoryStore{docs: make(map[string][]byte, len(docs))}
	for k, v := range docs {
		s.docs[k] = append([]byte(nil), v...)
	}
	return s
}

// NewMemoryStoreFromFile seeds key with the contents of path.
func NewMemoryStoreFromFile(key, path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return NewMemoryStore(map[string][]byte{key: data}), nil
}

// NewDemoStore seeds key with the built-in demo catalog.
func NewDemoStore(key string) *MemoryStore {
	return NewMemoryStore(map[string][]byte{key: DemoCatalog})
}

// Read returns a copy of the document stored at key.
func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[key]
	if !ok || len(data) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put replaces the document at key. It stands in for the external writer in
// tests and local tooling; the search path never calls it.
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), data...)
}
