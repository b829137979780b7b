package shortener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediashare/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(config.ShortenerConfig{Endpoint: srv.URL, TimeoutSec: 5})
	require.NoError(t, err)
	return c, srv
}

func TestNewHTTPClient_RequiresEndpoint(t *testing.T) {
	c, err := NewHTTPClient(config.ShortenerConfig{})
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestHTTPClient_Shorten(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotURL, gotPassword, gotContentType string
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			gotContentType = r.Header.Get("Content-Type")
			_ = r.ParseForm()
			gotURL = r.PostFormValue("url")
			gotPassword = r.PostFormValue("password")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"short_url":"https://sho.rt/abc123"}`))
		})

		password := "secret"
		shortURL, err := c.Shorten(context.Background(), "https://app.example.com/gallery/1", &password)

		assert.NoError(t, err)
		assert.Equal(t, "https://sho.rt/abc123", shortURL)
		assert.Equal(t, "https://app.example.com/gallery/1", gotURL)
		assert.Equal(t, "secret", gotPassword)
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	})

	t.Run("no password field when password is nil", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = r.ParseForm()
			_, hasPassword := r.PostForm["password"]
			assert.False(t, hasPassword)
			_, _ = w.Write([]byte(`{"short_url":"https://sho.rt/abc"}`))
		})

		_, err := c.Shorten(context.Background(), "https://app.example.com/g/1", nil)
		assert.NoError(t, err)
	})

	t.Run("invalid url is rejected without a network call", func(t *testing.T) {
		called := false
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		for _, bad := range []string{"", "   ", "ftp://example.com/x", "example.com/no-scheme"} {
			_, err := c.Shorten(context.Background(), bad, nil)
			assert.ErrorIs(t, err, ErrInvalidURL, bad)
		}
		assert.False(t, called)
	})

	t.Run("missing short_url in response", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		shortURL, err := c.Shorten(context.Background(), "https://app.example.com/g/1", nil)

		assert.Empty(t, shortURL)
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.ErrorContains(t, err, "shorten url")
	})

	t.Run("API error status carries the service message", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"URL is blocked"}`))
		})

		_, err := c.Shorten(context.Background(), "https://app.example.com/g/1", nil)

		assert.ErrorContains(t, err, "shorten url")
		assert.ErrorContains(t, err, "URL is blocked")
	})
}

func TestHTTPClient_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotPath, gotPassword string
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = r.ParseForm()
			gotPassword = r.PostFormValue("password")
			_, _ = w.Write([]byte(`{"total-clicks":7,"browser":{"Firefox":3}}`))
		})

		password := "secret"
		stats, err := c.Stats(context.Background(), "abc123", &password)

		assert.NoError(t, err)
		assert.Equal(t, "/stats/abc123", gotPath)
		assert.Equal(t, "secret", gotPassword)
		assert.Equal(t, float64(7), stats["total-clicks"])
	})

	t.Run("empty short code", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

		stats, err := c.Stats(context.Background(), "", nil)

		assert.Nil(t, stats)
		assert.ErrorContains(t, err, "short code is required")
	})

	t.Run("empty body is an error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		stats, err := c.Stats(context.Background(), "abc123", nil)

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, ErrInvalidResponse)
		assert.ErrorContains(t, err, "short url stats")
	})

	t.Run("wrong password is surfaced", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Invalid Password"}`))
		})

		_, err := c.Stats(context.Background(), "abc123", nil)

		assert.ErrorContains(t, err, "Invalid Password")
	})
}
