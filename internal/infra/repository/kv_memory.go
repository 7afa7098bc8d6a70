package repository

import (
	"context"
	"sync"

	domainrepo "app/internal/repository"
)

// メモリ上のKVストア。テストとmemoryドライバ用（永続化しない）。
type kvMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// DI
func NewKVMemoryStore() domainrepo.KVStore {
	return &kvMemoryStore{values: make(map[string]string)}
}

func (s *kvMemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *kvMemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *kvMemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
