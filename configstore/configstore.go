// Package configstore provides the durable key/value storage the catalog
// persists fetch state through: a gorm-backed sqlite implementation for
// real deployments and an in-memory one for tests and ephemeral runs.
package configstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a config key has never been written.
var ErrNotFound = errors.New("configstore: not found")

// ConfigStore is the durable store contract. Save failures are surfaced to
// the caller, never retried internally.
type ConfigStore interface {
	GetConfig(ctx context.Context, key string) (string, error)
	UpdateConfig(ctx context.Context, key string, value string) error
	Ping(ctx context.Context) error
	Close() error
}

// MemoryStore holds config values in memory. Contents do not survive the
// process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// GetConfig returns the value for key, or ErrNotFound.
func (s *MemoryStore) GetConfig(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// UpdateConfig inserts or replaces the value for key.
func (s *MemoryStore) UpdateConfig(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
