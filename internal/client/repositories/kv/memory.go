package kv

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryRepository is a Repository kept in process memory. It backs the
// client when no database is configured and is used by tests.
type MemoryRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.data[key]), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.data), nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.data)
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, key string, fn UpdateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, err := fn(slices.Clone(r.data[key]))
	if err != nil {
		return err
	}
	if value == nil {
		delete(r.data, key)
		return nil
	}
	r.data[key] = slices.Clone(value)
	return nil
}
