package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates a new id when the header is absent", func(t *testing.T) {
		app := fiber.New()
		app.Use(RequestID())

		var seen string
		app.Get("/", func(c *fiber.Ctx) error {
			seen, _ = c.Locals(RequestIDLocalKey).(string)
			return c.SendStatus(fiber.StatusOK)
		})

		res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, err)
		got := res.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.Equal(t, seen, got)
		_, err = uuid.Parse(got)
		assert.NoError(t, err)
	})

	t.Run("propagates an incoming id unchanged", func(t *testing.T) {
		app := fiber.New()
		app.Use(RequestID())
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		res, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, "req-42", res.Header.Get(RequestIDHeader))
	})
}

func TestLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer

	app := fiber.New()
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/api/media", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	_, err := app.Test(req)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.Equal(t, "/api/media", entry["path"])
	assert.Equal(t, float64(fiber.StatusTeapot), entry["status"])
	assert.GreaterOrEqual(t, entry["latency"], float64(0))

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}
