package netx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	t.Run("sends json body and headers", func(t *testing.T) {
		var gotMethod, gotCT, gotUA, gotReqID string
		var gotBody map[string]any

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotUA = r.Header.Get(HeaderUserAgent)
			gotReqID = r.Header.Get(HeaderRequestID)
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, &gotBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1}`))
		}))
		defer ts.Close()

		resp, err := DoJSON(context.Background(), ts.Client(), http.MethodPost, ts.URL, "inv-test", map[string]any{"name": "Bolt"})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotCT)
		assert.Equal(t, "inv-test", gotUA)
		assert.Equal(t, "Bolt", gotBody["name"])
		assert.Equal(t, http.StatusCreated, resp.Status)
		assert.True(t, resp.OK())
		assert.JSONEq(t, `{"id":1}`, string(resp.Body))
		assert.Equal(t, gotReqID, resp.RequestID)
		_, err = uuid.Parse(resp.RequestID)
		assert.NoError(t, err)
	})

	t.Run("no body means no content type", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		resp, err := DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, "", nil)
		require.NoError(t, err)
		assert.Empty(t, gotCT)
		assert.False(t, resp.OK())
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := DoJSON(context.Background(), http.DefaultClient, http.MethodGet, ts.URL, "", nil)
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := DoJSON(ctx, ts.Client(), http.MethodGet, ts.URL, "", nil)
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("unencodable body", func(t *testing.T) {
		_, err := DoJSON(context.Background(), http.DefaultClient, http.MethodPost, "http://unused", "", make(chan int))
		require.ErrorContains(t, err, "encode request")
	})
}
