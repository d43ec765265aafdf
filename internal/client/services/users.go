package services

import (
	"context"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/listview"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/registry"
	"github.com/BuiltByShivam/smart-inventory/internal/client/session"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

// UserService is the admin-only user management. Every call checks the
// session role first.
type UserService struct {
	users   *registry.Registry
	session *session.Manager
	client  client.Client
	log     logging.Logger
}

func NewUserService(users *registry.Registry, sm *session.Manager, c client.Client, log logging.Logger) *UserService {
	return &UserService{users: users, session: sm, client: c, log: log.With("component", "users")}
}

// List returns one page of all user records, built-ins first.
func (s *UserService) List(ctx context.Context, page, size int) (listview.Page[models.User], error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return listview.Page[models.User]{}, err
	}
	all, err := s.users.Resolve(ctx)
	if err != nil {
		return listview.Page[models.User]{}, err
	}
	return listview.Paginate(all, page, size), nil
}

func (s *UserService) ChangeRole(ctx context.Context, username, role string) error {
	c, err := s.session.RequireAdmin()
	if err != nil {
		return err
	}
	if err := s.users.ChangeRole(ctx, username, role); err != nil {
		return err
	}
	s.log.Info(ctx, "role changed", "by", c.Username, "username", username, "role", role)
	return nil
}

// Toggle flips the enabled flag and returns the new value.
func (s *UserService) Toggle(ctx context.Context, username string) (bool, error) {
	c, err := s.session.RequireAdmin()
	if err != nil {
		return false, err
	}
	all, err := s.users.Resolve(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range all {
		if u.Username != username {
			continue
		}
		if err := s.users.SetEnabled(ctx, username, !u.Enabled); err != nil {
			return false, err
		}
		s.log.Info(ctx, "user toggled", "by", c.Username, "username", username, "enabled", !u.Enabled)
		return !u.Enabled, nil
	}
	return false, registry.ErrNotFound
}

func (s *UserService) Remove(ctx context.Context, username string) error {
	c, err := s.session.RequireAdmin()
	if err != nil {
		return err
	}
	if err := s.users.Remove(ctx, username); err != nil {
		return err
	}
	s.log.Info(ctx, "user removed", "by", c.Username, "username", username)
	return nil
}

// Remote lists the accounts known to the product service.
func (s *UserService) Remote(ctx context.Context) ([]models.RemoteUser, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.client.ListUsers(ctx)
}
