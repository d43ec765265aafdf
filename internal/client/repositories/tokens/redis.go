package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

const redisKeyPrefix = "inventory:reset:"

// RedisStore keeps one key per token. Keys get a Redis TTL of retention so
// abandoned tokens are eventually dropped; it is housekeeping only and must
// exceed the ledger TTL.
type RedisStore struct {
	client    redis.Cmdable
	retention time.Duration
}

func NewRedisStore(client redis.Cmdable, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) Put(ctx context.Context, t models.ResetToken) error {
	b, err := json.Marshal(toRecord(t))
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+t.Token, b, s.retention).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (models.ResetToken, bool, error) {
	b, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ResetToken{}, false, nil
	}
	if err != nil {
		return models.ResetToken{}, false, fmt.Errorf("load reset token: %w", err)
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return models.ResetToken{}, false, fmt.Errorf("decode reset token: %w", err)
	}
	return r.token(token), true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}
