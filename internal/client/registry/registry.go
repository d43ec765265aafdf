// Package registry is the local credential registry: the two built-in
// accounts merged with the records persisted under "mockUsers".
//
// Credentials are kept in cleartext. The registry exists for development and
// demos and gives no security guarantees.
//
// Every mutation checks, on a copy of the resolved records, that at least one
// enabled admin remains before anything is written.
package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

type Registry struct {
	repo kv.Repository
	log  logging.Logger
	mu   sync.Mutex
}

func New(repo kv.Repository, log logging.Logger) *Registry {
	return &Registry{repo: repo, log: log.With("component", "registry")}
}

// Resolve returns the built-in records, overridden by persisted records of
// the same name, followed by the other persisted records.
func (r *Registry) Resolve(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(ctx)
}

func (r *Registry) resolve(ctx context.Context) ([]models.User, error) {
	raw, err := r.repo.Get(ctx, common.KeyMockUsers)
	if err != nil {
		return nil, err
	}
	stored, err := decode(raw)
	if err != nil {
		r.log.Warn(ctx, "ignoring unreadable user records", "error", err)
		stored = nil
	}

	users := slices.Clone(builtins)
	for _, s := range stored {
		if i := indexOf(users, s.Username); i >= 0 {
			s.BuiltIn = true
			users[i] = s
			continue
		}
		users = append(users, s)
	}
	return users, nil
}

// Authenticate returns the record matching username and password exactly.
func (r *Registry) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	users, err := r.Resolve(ctx)
	if err != nil {
		return models.User{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool {
		return u.Username == username && u.Password == password
	})
	if i < 0 {
		return models.User{}, ErrInvalidCredentials
	}
	if !users[i].Enabled {
		return models.User{}, ErrAccountDisabled
	}
	return users[i], nil
}

// Register adds a new enabled user with role user.
func (r *Registry) Register(ctx context.Context, username, password, question, answer string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	u := defaults
	u.Username = username
	u.Password = password
	if q := strings.TrimSpace(question); q != "" {
		u.SecurityQuestion = q
	}
	u.SecurityAnswer = strings.TrimSpace(answer)

	err := r.mutate(ctx, func(users []models.User) ([]models.User, error) {
		if indexOf(users, username) >= 0 {
			return nil, ErrUsernameTaken
		}
		return append(users, u), nil
	})
	if err != nil {
		return models.User{}, err
	}
	r.log.Info(ctx, "user registered", "username", username)
	return u, nil
}

func (r *Registry) ChangeRole(ctx context.Context, username, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return r.mutate(ctx, func(users []models.User) ([]models.User, error) {
		i := indexOf(users, username)
		if i < 0 {
			return nil, ErrNotFound
		}
		users[i].Role = role
		return users, nil
	})
}

func (r *Registry) SetEnabled(ctx context.Context, username string, enabled bool) error {
	return r.mutate(ctx, func(users []models.User) ([]models.User, error) {
		i := indexOf(users, username)
		if i < 0 {
			return nil, ErrNotFound
		}
		users[i].Enabled = enabled
		return users, nil
	})
}

func (r *Registry) Remove(ctx context.Context, username string) error {
	return r.mutate(ctx, func(users []models.User) ([]models.User, error) {
		i := indexOf(users, username)
		if i < 0 {
			return nil, ErrNotFound
		}
		if users[i].BuiltIn {
			return nil, ErrProtectedAccount
		}
		return slices.Delete(users, i, i+1), nil
	})
}

// SetPassword replaces a user's password. An unknown username gets a new
// enabled user record.
func (r *Registry) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return r.mutate(ctx, func(users []models.User) ([]models.User, error) {
		if i := indexOf(users, username); i >= 0 {
			users[i].Password = password
			return users, nil
		}
		u := defaults
		u.Username = username
		u.Password = password
		return append(users, u), nil
	})
}

// LookupSecurityQuestion returns the question of an enabled account. A
// disabled account matches both ErrNotFound and ErrAccountDisabled.
func (r *Registry) LookupSecurityQuestion(ctx context.Context, username string) (string, error) {
	u, err := r.enabled(ctx, username)
	if err != nil {
		return "", err
	}
	return u.SecurityQuestion, nil
}

// VerifySecurityAnswer compares answers ignoring case and surrounding space.
func (r *Registry) VerifySecurityAnswer(ctx context.Context, username, answer string) error {
	u, err := r.enabled(ctx, username)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(u.SecurityAnswer), strings.TrimSpace(answer)) {
		return ErrIncorrectAnswer
	}
	return nil
}

func (r *Registry) enabled(ctx context.Context, username string) (models.User, error) {
	users, err := r.Resolve(ctx)
	if err != nil {
		return models.User{}, err
	}
	i := indexOf(users, strings.TrimSpace(username))
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	if !users[i].Enabled {
		return models.User{}, fmt.Errorf("%w: %w", ErrNotFound, ErrAccountDisabled)
	}
	return users[i], nil
}

// mutate applies fn to a copy of the resolved records and persists the result.
// A change that takes away the last enabled admin is rejected; records that
// already lack one (edited outside the client) do not block other changes.
func (r *Registry) mutate(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	next, err := fn(slices.Clone(users))
	if err != nil {
		return err
	}
	if slices.ContainsFunc(users, models.User.IsActiveAdmin) && !slices.ContainsFunc(next, models.User.IsActiveAdmin) {
		return ErrLastAdminViolation
	}

	raw, err := encode(next)
	if err != nil {
		return err
	}
	return r.repo.Set(ctx, common.KeyMockUsers, raw)
}

func indexOf(users []models.User, username string) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.Username == username })
}
