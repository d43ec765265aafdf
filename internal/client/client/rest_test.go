package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client/fakeapi"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

func newTestClient(t *testing.T) (*RESTClient, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New(t)
	c, err := NewRESTClient(srv.URL+"/", 2*time.Second, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestNewRESTClient_InvalidURL(t *testing.T) {
	_, err := NewRESTClient("localhost", time.Second, logging.Nop())
	require.Error(t, err)
}

func TestRESTClient_CRUD(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, models.ProductDraft{Name: "Widget", Price: 9.99, Quantity: 3, Category: "Tools"})
	require.NoError(t, err)
	assert.Equal(t, models.ProductID("1"), created.ID)
	assert.NotEmpty(t, created.LastUpdated)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("Get mismatch (-want +got):\n%s", diff)
	}

	qty := 7
	raw, err := c.Update(ctx, created.ID, models.ProductPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"quantity":7`)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.Quantity(7), list[0].Quantity)

	require.NoError(t, c.Delete(ctx, created.ID))
	assert.Empty(t, srv.IDs())

	assert.Contains(t, srv.Requests(), "PUT /api/products/1")
}

func TestRESTClient_Queries(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	srv.Seed(fakeapi.Product{Name: "Hammer", Category: "Tools", Price: fakeapi.Float(12.5), Quantity: fakeapi.Int(4)})
	srv.Seed(fakeapi.Product{Name: "Apple", Category: "Food", Price: fakeapi.Float(0.5)})
	srv.Seed(fakeapi.Product{Name: "Sledgehammer", Category: "tools", Price: fakeapi.Float(40)})

	byCat, err := c.ByCategory(ctx, "TOOLS")
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	byName, err := c.SearchByName(ctx, "hammer")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	cheap, err := c.PriceAtMost(ctx, 12.5)
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	dear, err := c.PriceAtLeast(ctx, 40)
	require.NoError(t, err)
	require.Len(t, dear, 1)
	assert.Equal(t, "Sledgehammer", dear[0].Name)
	assert.Equal(t, models.Quantity(0), dear[0].Quantity)

	page, err := c.ListPage(ctx, PageQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, models.ProductID("3"), page.Content[0].ID)
	assert.Contains(t, srv.Requests(), "GET /api/products/page?order=asc&page=1&size=2")
}

func TestRESTClient_AuthAndUsers(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Signup(ctx, SignupRequest{Username: "alice", Password: "pw"}))
	require.NoError(t, c.ForgotPassword(ctx, "alice"))
	require.NoError(t, c.ResetPassword(ctx, "tok", "new"))

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	assert.Equal(t, []string{
		"POST /api/auth/signup",
		"POST /api/auth/forgot-password",
		"POST /api/auth/reset-password",
		"GET /api/users",
	}, srv.Requests())
}

func TestRESTClient_RemoteErrors(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	t.Run("message from payload", func(t *testing.T) {
		srv.Fail(http.MethodPost, http.StatusBadRequest, "Category is required")
		defer srv.Recover()

		_, err := c.Create(ctx, models.ProductDraft{Name: "x"})
		var re *RemoteError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, http.StatusBadRequest, re.Status)
		assert.Equal(t, "Category is required", re.Message)
	})

	t.Run("no payload", func(t *testing.T) {
		srv.Fail(http.MethodDelete, http.StatusInternalServerError, "")
		defer srv.Recover()

		err := c.Delete(ctx, "1")
		var re *RemoteError
		require.True(t, errors.As(err, &re))
		assert.Empty(t, re.Message)
		assert.Contains(t, err.Error(), "Internal Server Error")
	})

	t.Run("404 matches not found", func(t *testing.T) {
		_, err := c.Get(ctx, "999")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestRESTClient_Unavailable(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Close()

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRESTClient_CancelledContext(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrUnavailable)
}
