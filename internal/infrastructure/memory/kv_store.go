// Package memory provides a process-local key-value store. It backs
// guest sessions in deployments without Redis and the service-level
// tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"
)

// Store is a mutex-guarded in-memory key space shared by every scoped
// view. Handlers run on multiple goroutines, hence the lock.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Scoped returns a view of the store whose keys all live under the
// given prefix. Clear on the view removes only the prefixed keys,
// mirroring how the Redis store scopes guest sessions.
func (s *Store) Scoped(prefix string) repository.KeyValueStore {
	return &scopedStore{store: s, prefix: prefix}
}

type scopedStore struct {
	store  *Store
	prefix string
}

func (s *scopedStore) Get(_ context.Context, key string) (string, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	value, ok := s.store.data[s.prefix+key]
	if !ok {
		return "", fmt.Errorf("%w: key %s", errs.ErrNotFound, key)
	}

	return value, nil
}

func (s *scopedStore) Set(_ context.Context, key, value string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.data[s.prefix+key] = value
	return nil
}

func (s *scopedStore) Remove(_ context.Context, key string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	delete(s.store.data, s.prefix+key)
	return nil
}

func (s *scopedStore) Clear(_ context.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for key := range s.store.data {
		if strings.HasPrefix(key, s.prefix) {
			delete(s.store.data, key)
		}
	}
	return nil
}
