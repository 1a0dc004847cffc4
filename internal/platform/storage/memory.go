package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryStore keeps blobs in a map. Test use only.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Store(ctx context.Context, r io.Reader, suggestedName string) (*StoredBlob, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := blobKey(suggestedName)

	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()

	return &StoredBlob{Key: key, URL: "memory://" + key}, nil
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	return data, ok
}
