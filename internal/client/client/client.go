package client

import (
	"context"
	"encoding/json"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

// Client talks to the remote product service.
type Client interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id models.ProductID) (models.Product, error)
	Create(ctx context.Context, draft models.ProductDraft) (models.Product, error)
	// Update returns the raw JSON object the server answered with, so callers
	// can merge exactly the fields it contains.
	Update(ctx context.Context, id models.ProductID, patch models.ProductPatch) (json.RawMessage, error)
	Delete(ctx context.Context, id models.ProductID) error

	ListPage(ctx context.Context, q PageQuery) (models.ProductPage, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	SearchByName(ctx context.Context, name string) ([]models.Product, error)
	PriceAtMost(ctx context.Context, price float64) ([]models.Product, error)
	PriceAtLeast(ctx context.Context, price float64) ([]models.Product, error)

	Signup(ctx context.Context, req SignupRequest) error
	ForgotPassword(ctx context.Context, emailOrUsername string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ListUsers(ctx context.Context) ([]models.RemoteUser, error)

	Close() error
}

// PageQuery selects one page of the server-side paged listing. Page is
// zero-based.
type PageQuery struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
