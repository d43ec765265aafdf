// Package session tracks who is signed in to the interactive client.
//
// The role is persisted under the "role" key so other tools reading the
// state database see it; the signed session token lives only in memory and
// is what admin-only commands check.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// RoleGuest is reported when nobody is signed in.
const RoleGuest = "guest"

type Manager struct {
	repo   kv.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	token string
}

func NewManager(repo kv.Repository, secret string, ttl time.Duration) *Manager {
	return &Manager{repo: repo, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Start signs u in.
func (m *Manager) Start(ctx context.Context, u models.User) error {
	tok, err := GenerateToken(u.Username, u.Role, m.secret, m.now(), m.ttl)
	if err != nil {
		return err
	}
	if err := kv.SetJSON(ctx, m.repo, common.KeyRole, u.Role); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = tok
	m.mu.Unlock()
	return nil
}

// End signs out. It is safe to call when nobody is signed in.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return m.repo.Delete(ctx, common.KeyRole)
}

// Wipe ends the session and deletes every locally stored value.
func (m *Manager) Wipe(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return m.repo.Clear(ctx)
}

// Current returns the claims of the signed-in user, or
// common.ErrorUnauthorized.
func (m *Manager) Current() (*Claims, error) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	if tok == "" {
		return nil, common.ErrorUnauthorized
	}
	c, err := ParseToken(tok, m.secret, m.now())
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			m.mu.Lock()
			m.token = ""
			m.mu.Unlock()
		}
		return nil, errors.Join(common.ErrorUnauthorized, err)
	}
	return c, nil
}

// RequireAdmin returns the current claims when the user is an admin.
func (m *Manager) RequireAdmin() (*Claims, error) {
	c, err := m.Current()
	if err != nil {
		return nil, err
	}
	if c.Role != models.RoleAdmin {
		return nil, common.ErrorForbidden
	}
	return c, nil
}

// StoredRole returns the persisted role, or RoleGuest.
func (m *Manager) StoredRole(ctx context.Context) (string, error) {
	var role string
	ok, err := kv.GetJSON(ctx, m.repo, common.KeyRole, &role)
	if err != nil || !ok || role == "" {
		return RoleGuest, err
	}
	return role, nil
}
