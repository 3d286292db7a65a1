package session

import (
	"context"
	"sync"

	"github.com/edusuite/dashboard-gateway/internal/core/domain"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
)

// MemoryStore is a goroutine-safe in-memory ports.SessionStore used by
// tests and by CLI tooling that has no cookie jar.
type MemoryStore struct {
	mu    sync.RWMutex
	creds domain.Credentials
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore(creds domain.Credentials) *MemoryStore {
	return &MemoryStore{creds: creds}
}

func (s *MemoryStore) Load(ctx context.Context) (domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = domain.Credentials{}
	return nil
}
