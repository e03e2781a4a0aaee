package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory. Suitable for development
// and tests; credentials do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]string
}

// NewMemory builds an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{creds: make(map[string]string)}
}

// Save stores the credential for the client.
func (s *MemoryStore) Save(_ context.Context, clientID, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[clientID] = credential
	return nil
}

// Load returns the stored credential, if any.
func (s *MemoryStore) Load(_ context.Context, clientID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[clientID]
	return cred, ok, nil
}

// Clear removes the credential for the client.
func (s *MemoryStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, clientID)
	return nil
}
