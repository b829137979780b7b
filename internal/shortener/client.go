// Package shortener wraps the external URL-shortening service (spoo.me-style
// API). It is a thin RPC client: form-encoded POSTs, JSON responses, stable
// error prefixes so callers can pattern-match failures.
package shortener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mediashare/internal/config"
)

var (
	// ErrInvalidURL is returned for empty or non-http(s) URLs before any
	// network call is made.
	ErrInvalidURL = errors.New("url must start with http:// or https://")
	// ErrInvalidResponse is returned when the service answers without the
	// expected payload. A missing short_url or an empty stats body is a hard
	// error, never a silent fallback.
	ErrInvalidResponse = errors.New("invalid response from shortener")
)

// Client is the contract the rest of the system depends on.
// Shorten is not idempotent (each call may mint a new mapping); Stats is a
// pure read and safe to retry.
type Client interface {
	// Shorten maps longURL to a short URL, optionally protecting it with a
	// password. Returns the full short URL as issued by the service.
	Shorten(ctx context.Context, longURL string, password *string) (string, error)

	// Stats returns the raw click-analytics payload for a short code.
	Stats(ctx context.Context, shortCode string, password *string) (map[string]any, error)
}

// HTTPClient talks to the shortener over HTTP with a bounded timeout.
type HTTPClient struct {
	endpoint string
	hc       *http.Client
}

// NewHTTPClient builds a client from config. The timeout bounds every call so
// a hung shortener cannot hold an inbound request open indefinitely.
func NewHTTPClient(cfg config.ShortenerConfig) (*HTTPClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("shortener endpoint is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		hc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// Shorten validates the URL locally, then POSTs it form-encoded to the
// service and extracts short_url from the JSON response.
func (c *HTTPClient) Shorten(ctx context.Context, longURL string, password *string) (string, error) {
	longURL = strings.TrimSpace(longURL)
	if longURL == "" || (!strings.HasPrefix(longURL, "http://") && !strings.HasPrefix(longURL, "https://")) {
		return "", ErrInvalidURL
	}

	form := url.Values{}
	form.Set("url", longURL)
	if password != nil && *password != "" {
		form.Set("password", *password)
	}

	body, err := c.postForm(ctx, c.endpoint, form)
	if err != nil {
		return "", fmt.Errorf("shorten url: %w", err)
	}

	var resp struct {
		ShortURL string `json:"short_url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("shorten url: %w: %v", ErrInvalidResponse, err)
	}
	if resp.ShortURL == "" {
		return "", fmt.Errorf("shorten url: %w: missing short_url", ErrInvalidResponse)
	}
	return resp.ShortURL, nil
}

// Stats fetches the raw statistics object for a short code. The payload is
// returned verbatim; this client never reinterprets analytics.
func (c *HTTPClient) Stats(ctx context.Context, shortCode string, password *string) (map[string]any, error) {
	if shortCode == "" {
		return nil, fmt.Errorf("short url stats: short code is required")
	}

	form := url.Values{}
	if password != nil && *password != "" {
		form.Set("password", *password)
	}

	body, err := c.postForm(ctx, c.endpoint+"/stats/"+url.PathEscape(shortCode), form)
	if err != nil {
		return nil, fmt.Errorf("short url stats: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("short url stats: %w: empty body", ErrInvalidResponse)
	}

	var stats map[string]any
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("short url stats: %w: %v", ErrInvalidResponse, err)
	}
	return stats, nil
}

func (c *HTTPClient) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("service returned %s: %s", res.Status, apiErrorMessage(body))
	}
	return body, nil
}

// apiErrorMessage digs a human-readable message out of an error response.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return "no response body"
}
