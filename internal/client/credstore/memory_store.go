// internal/client/credstore/memory_store.go
package credstore

import (
	"sync"

	"shopauth-service/internal/domain/account"
)

// MemoryStore is an in-process Store. Useful for tests and for clients that
// do not persist credentials across restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(token string, identity account.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{Token: token, UserData: &identity}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}

// SetToken stores a bare token without an identity snapshot. Only tests need
// this; a real login always writes both slots through Save.
func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{Token: token}
}
