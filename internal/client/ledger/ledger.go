// Package ledger issues and redeems password-reset tokens.
//
// A token moves from issued to consumed (after a successful password change)
// or expired (when redeemed more than TTL after issue). Both end states
// remove the token; a new one must be issued to try again.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/tokens"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

const DefaultTTL = 30 * time.Minute

var (
	ErrTokenNotFound = errors.New("invalid or expired token")
	ErrTokenExpired  = common.ErrTokenExpired
)

type Ledger struct {
	store    tokens.Store
	log      logging.Logger
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

type Option func(*Ledger)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(l *Ledger) { l.ttl = EffectiveTTL(ttl) }
}

// EffectiveTTL is the validity window a ledger built WithTTL(ttl) uses.
func EffectiveTTL(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return DefaultTTL
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(store tokens.Store, log logging.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		log:      log.With("component", "ledger"),
		ttl:      DefaultTTL,
		now:      time.Now,
		newToken: func() (string, error) { return common.MakeRandHexString(16) },
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Ledger) TTL() time.Duration {
	return l.ttl
}

// Issue records a fresh token for username and returns it.
func (l *Ledger) Issue(ctx context.Context, username string) (string, error) {
	token, err := l.newToken()
	if err != nil {
		return "", err
	}
	t := models.ResetToken{Token: token, Username: username, Created: l.now()}
	if err := l.store.Put(ctx, t); err != nil {
		return "", err
	}
	l.log.Info(ctx, "reset token issued", "username", username)
	return token, nil
}

// Redeem returns the token's username. The token stays valid until Consume.
// An expired token is deleted.
func (l *Ledger) Redeem(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenNotFound
	}
	t, ok, err := l.store.Get(ctx, token)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTokenNotFound
	}
	if t.Expired(l.now(), l.ttl) {
		if err := l.store.Delete(ctx, token); err != nil {
			l.log.Warn(ctx, "failed to drop expired reset token", "error", err)
		}
		return "", ErrTokenExpired
	}
	return t.Username, nil
}

// Consume deletes the token whatever its state.
func (l *Ledger) Consume(ctx context.Context, token string) error {
	return l.store.Delete(ctx, token)
}
