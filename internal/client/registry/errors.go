package registry

import (
	"errors"

	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrLastAdminViolation = errors.New("at least one enabled admin must remain")
	ErrProtectedAccount   = errors.New("built-in account cannot be removed")
	ErrIncorrectAnswer    = errors.New("incorrect answer")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrNotFound is common.ErrorNotFound so callers may match either.
	ErrNotFound = common.ErrorNotFound
)
