package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
// It mirrors the persistence contract exactly: whole-document writes,
// last write wins, prefix scans ordered by key.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteMany(ctx context.Context, keys []string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.data, key)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	entries := make([]Entry, 0)
	for key, raw := range s.data {
		if strings.HasPrefix(key, prefix) {
			value := make(json.RawMessage, len(raw))
			copy(value, raw)
			entries = append(entries, Entry{Key: key, Value: value})
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Len reports how many keys are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
