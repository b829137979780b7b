package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromApp(t *testing.T) (*fiber.App, *PrometheusMiddleware) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m
}

func TestPrometheusMiddleware_CountsRequests(t *testing.T) {
	app, m := newPromApp(t)
	app.Get("/api/media/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/media/abc", nil))
		require.NoError(t, err)
	}

	// The route pattern is used as the path label, not the raw URL.
	count := testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodGet, "/api/media/:id", "200"))
	assert.Equal(t, float64(3), count)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_CountsErrorStatus(t *testing.T) {
	app, m := newPromApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.ErrServiceUnavailable
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	count := testutil.ToFloat64(m.requestCount.WithLabelValues(http.MethodGet, "/boom", "503"))
	assert.Equal(t, float64(1), count)
}

func TestPrometheusMiddleware_ExcludesMetricsEndpoint(t *testing.T) {
	app, m := newPromApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
	assert.Equal(t, 0, testutil.CollectAndCount(m.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
