// Package client talks to a running review proxy over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
)

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 4096

// StatusError is returned when the proxy answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("review proxy returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("review proxy returned %d: %s", e.StatusCode, e.Body)
}

// Client calls the review proxy endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the proxy at cfg.ServerURL.
func New(cfg config.ClientConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Review posts code to /ai/get-review and returns the markdown text unchanged.
func (c *Client) Review(ctx context.Context, req *core.ReviewRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode review request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/ai/get-review", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Persona fetches the system instruction the proxy sends with every review.
func (c *Client) Persona(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/ai/persona", nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// History lists archived reviews, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]core.Review, error) {
	path := "/ai/reviews"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var reviews []core.Review
	if err := json.Unmarshal(body, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode review history: %w", err)
	}
	return reviews, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
