package handler

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"mediashare/internal/http/middleware"
	"mediashare/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// ExpiredAt is only set for expired share links (410 responses).
	ExpiredAt *time.Time `json:"expired_at,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeExpired is the 410 variant carrying the expiration timestamp.
func writeExpired(c *fiber.Ctx, expiredAt time.Time) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:      "LINK_EXPIRED",
			Message:   "share link has expired",
			ExpiredAt: &expiredAt,
		},
	}
	return c.Status(fiber.StatusGone).JSON(res)
}

// writeServiceError translates service-layer errors into HTTP responses.
// Unrecognized errors become a generic 500; in development mode the error
// text is attached for diagnostics.
func writeServiceError(c *fiber.Ctx, err error) error {
	var expired *service.ExpiredError
	var dependency *service.DependencyError

	switch {
	case errors.Is(err, service.ErrMediaIDRequired):
		return writeError(c, fiber.StatusBadRequest, "MEDIA_ID_REQUIRED", "mediaId is required")
	case errors.Is(err, service.ErrExpiresAtRequired):
		return writeError(c, fiber.StatusBadRequest, "EXPIRES_AT_REQUIRED", "expiresAt is required")
	case errors.Is(err, service.ErrExpiresAtInvalid):
		return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRES_AT", "invalid expiresAt date format")
	case errors.Is(err, service.ErrExpiresAtPast):
		return writeError(c, fiber.StatusBadRequest, "EXPIRES_AT_NOT_FUTURE", "expiresAt must be in the future")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrMediaNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "media not found")
	case errors.Is(err, service.ErrShareLinkNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "share link not found")
	case errors.Is(err, service.ErrPasswordRequired):
		return writeError(c, fiber.StatusUnauthorized, "PASSWORD_REQUIRED", "password required")
	case errors.Is(err, service.ErrInvalidPassword):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_PASSWORD", "invalid password")
	case errors.As(err, &expired):
		return writeExpired(c, expired.ExpiredAt)
	case errors.As(err, &dependency):
		// The dependency's message travels to the caller for diagnostics.
		return writeError(c, fiber.StatusBadGateway, "SHORTENER_UNAVAILABLE", dependency.Error())
	default:
		msg := "internal server error"
		if os.Getenv("APP_ENV") == "development" {
			msg = err.Error()
		}
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msg)
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
