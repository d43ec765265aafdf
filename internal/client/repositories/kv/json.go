package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value stored under key into dst. It reports false, with
// dst untouched, when the key is absent.
func GetJSON(ctx context.Context, r Repository, key string, dst any) (bool, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode state[%s]: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, r Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode state[%s]: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}
