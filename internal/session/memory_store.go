package session

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/utils"
)

// MemoryBackend keeps every scope in process memory. Used in development and tests.
type MemoryBackend struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{scopes: make(map[string]map[string]string)}
}

// Scope returns the store for id.
func (b *MemoryBackend) Scope(id string) Store {
	return &memoryStore{backend: b, scope: utils.CopyString(id)}
}

// NewMemoryStore returns a standalone in-memory store.
func NewMemoryStore() Store {
	return NewMemoryBackend().Scope("default")
}

type memoryStore struct {
	backend *MemoryBackend
	scope   string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	v, ok := s.backend.scopes[s.scope][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	slots, ok := s.backend.scopes[s.scope]
	if !ok {
		slots = make(map[string]string)
		s.backend.scopes[s.scope] = slots
	}
	// Values may alias request buffers that are reused after the request ends.
	slots[utils.CopyString(key)] = utils.CopyString(value)
	return nil
}

func (s *memoryStore) Clear(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	slots, ok := s.backend.scopes[s.scope]
	if !ok {
		return nil
	}
	delete(slots, key)
	if len(slots) == 0 {
		delete(s.backend.scopes, s.scope)
	}
	return nil
}
