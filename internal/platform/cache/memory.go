package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocations keeps revoked token ids in a map. Test use only.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: make(map[string]time.Time)}
}

func (s *MemoryRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryRevocations) IsRevoked(ctx context.Context, tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	return ok && time.Now().Before(exp)
}
