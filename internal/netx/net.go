// Package netx holds the small HTTP helpers used by the REST product client.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Header names set on every outgoing request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserAgent = "User-Agent"
)

// Response is a fully read HTTP response.
type Response struct {
	Status    int
	Body      []byte
	RequestID string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// DoJSON sends body (when non-nil) as JSON and reads the whole response.
// Transport failures are returned as-is; non-2xx statuses are not errors.
func DoJSON(ctx context.Context, hc *http.Client, method, url, userAgent string, body any) (*Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if userAgent != "" {
		req.Header.Set(HeaderUserAgent, userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{Status: resp.StatusCode, Body: b, RequestID: reqID}, nil
}
