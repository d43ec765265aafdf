package kv

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns the value to store. Returning a nil value deletes the key.
type UpdateFunc func(old []byte) ([]byte, error)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Update applies fn to a single key atomically.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
