package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
	"github.com/BuiltByShivam/smart-inventory/internal/netx"
)

const productsPath = "/api/products"

type RESTClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewRESTClient returns a client for the service at baseURL. Every request is
// bounded by timeout.
func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid product service url %q", baseURL)
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *RESTClient) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.call(ctx, http.MethodGet, productsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) Get(ctx context.Context, id models.ProductID) (models.Product, error) {
	var out models.Product
	err := c.call(ctx, http.MethodGet, productPath(id), nil, &out)
	return out, err
}

func (c *RESTClient) Create(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	var out models.Product
	err := c.call(ctx, http.MethodPost, productsPath, draft, &out)
	return out, err
}

func (c *RESTClient) Update(ctx context.Context, id models.ProductID, patch models.ProductPatch) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.call(ctx, http.MethodPut, productPath(id), patch, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) Delete(ctx context.Context, id models.ProductID) error {
	return c.call(ctx, http.MethodDelete, productPath(id), nil, nil)
}

func (c *RESTClient) ListPage(ctx context.Context, q PageQuery) (models.ProductPage, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Desc {
		v.Set("order", "desc")
	} else {
		v.Set("order", "asc")
	}

	var out models.ProductPage
	err := c.call(ctx, http.MethodGet, productsPath+"/page?"+v.Encode(), nil, &out)
	return out, err
}

func (c *RESTClient) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return c.listAt(ctx, productsPath+"/category/"+url.PathEscape(category))
}

func (c *RESTClient) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	return c.listAt(ctx, productsPath+"/search/"+url.PathEscape(name))
}

func (c *RESTClient) PriceAtMost(ctx context.Context, price float64) ([]models.Product, error) {
	return c.listAt(ctx, productsPath+"/price/less-than/"+formatFloat(price))
}

func (c *RESTClient) PriceAtLeast(ctx context.Context, price float64) ([]models.Product, error) {
	return c.listAt(ctx, productsPath+"/price/greater-than/"+formatFloat(price))
}

func (c *RESTClient) Signup(ctx context.Context, req SignupRequest) error {
	return c.call(ctx, http.MethodPost, "/api/auth/signup", req, nil)
}

func (c *RESTClient) ForgotPassword(ctx context.Context, emailOrUsername string) error {
	body := map[string]string{"emailOrUsername": emailOrUsername}
	return c.call(ctx, http.MethodPost, "/api/auth/forgot-password", body, nil)
}

func (c *RESTClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.call(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

func (c *RESTClient) ListUsers(ctx context.Context) ([]models.RemoteUser, error) {
	var out []models.RemoteUser
	if err := c.call(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) listAt(ctx context.Context, path string) ([]models.Product, error) {
	var out []models.Product
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// call performs one request and decodes a 2xx body into out (when non-nil and
// the body is not empty).
func (c *RESTClient) call(ctx context.Context, method, path string, body, out any) error {
	started := time.Now()
	resp, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, common.DefaultUserAgent, body)
	if err != nil {
		c.log.Warn(ctx, "product service request failed", "method", method, "path", path, "error", err)
		return c.mapError(ctx, err)
	}

	c.log.Debug(ctx, "product service request",
		"method", method,
		"path", path,
		"status", resp.Status,
		"request_id", resp.RequestID,
		"took", time.Since(started),
	)

	if !resp.OK() {
		return remoteError(resp)
	}

	if out == nil || len(strings.TrimSpace(string(resp.Body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *RESTClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.As(err, &netErr), errors.As(err, &urlErr):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}

func remoteError(resp *netx.Response) *RemoteError {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.Body, &payload)
	return &RemoteError{Status: resp.Status, Message: payload.Message}
}

func productPath(id models.ProductID) string {
	return productsPath + "/" + url.PathEscape(string(id))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
