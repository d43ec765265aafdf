package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// KVStore keeps all tokens in one JSON object under "pwResetTokens":
//
//	{"<token>": {"username": "alice", "created": 1700000000000}}
type KVStore struct {
	repo kv.Repository
}

func NewKVStore(repo kv.Repository) *KVStore {
	return &KVStore{repo: repo}
}

func (s *KVStore) Put(ctx context.Context, t models.ResetToken) error {
	return s.repo.Update(ctx, common.KeyResetTokens, func(old []byte) ([]byte, error) {
		m, err := decodeMap(old)
		if err != nil {
			return nil, err
		}
		m[t.Token] = toRecord(t)
		return json.Marshal(m)
	})
}

func (s *KVStore) Get(ctx context.Context, token string) (models.ResetToken, bool, error) {
	raw, err := s.repo.Get(ctx, common.KeyResetTokens)
	if err != nil {
		return models.ResetToken{}, false, err
	}
	m, err := decodeMap(raw)
	if err != nil {
		return models.ResetToken{}, false, err
	}
	r, ok := m[token]
	if !ok {
		return models.ResetToken{}, false, nil
	}
	return r.token(token), true, nil
}

func (s *KVStore) Delete(ctx context.Context, token string) error {
	return s.repo.Update(ctx, common.KeyResetTokens, func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, nil
		}
		m, err := decodeMap(old)
		if err != nil {
			return nil, err
		}
		delete(m, token)
		return json.Marshal(m)
	})
}

func decodeMap(raw []byte) (map[string]record, error) {
	m := make(map[string]record)
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode reset tokens: %w", err)
	}
	return m, nil
}

func timeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
