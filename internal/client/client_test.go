package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.ClientConfig{ServerURL: srv.URL + "/", Timeout: 5 * time.Second})
}

func TestClient_Review(t *testing.T) {
	const review = "## Summary\n\n✅ Fine.\n"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ai/get-review", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req core.ReviewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "let a = 1", req.Code)
		assert.Equal(t, []string{"Be strict"}, req.Instructions)

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, review)
	})

	got, err := c.Review(context.Background(), &core.ReviewRequest{Code: "let a = 1", Instructions: []string{"Be strict"}})
	require.NoError(t, err)
	assert.Equal(t, review, got)
}

func TestClient_Review_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Failed to get review from the model", http.StatusBadGateway)
	})

	_, err := c.Review(context.Background(), &core.ReviewRequest{Code: "x"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "Failed to get review from the model", statusErr.Body)
}

func TestClient_Review_Unreachable(t *testing.T) {
	c := New(config.ClientConfig{ServerURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := c.Review(context.Background(), &core.ReviewRequest{Code: "x"})
	assert.Error(t, err)
}

func TestClient_History(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/reviews", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]core.Review{{ID: 7, Content: "latest"}})
	})

	reviews, err := c.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, int64(7), reviews[0].ID)
	assert.Equal(t, "latest", reviews[0].Content)
}

func TestClient_History_Disabled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		http.Error(w, "review archive is disabled", http.StatusNotFound)
	})

	_, err := c.History(context.Background(), 0)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_Persona(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/persona", r.URL.Path)
		_, _ = io.WriteString(w, "You are a Senior Code Reviewer")
	})

	persona, err := c.Persona(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "You are a Senior Code Reviewer", persona)
}
