package service

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors are detected before any storage or network access.
var (
	ErrIDRequired        = errors.New("id is required")
	ErrMediaIDRequired   = errors.New("mediaId is required")
	ErrExpiresAtRequired = errors.New("expiresAt is required")
	ErrExpiresAtInvalid  = errors.New("invalid expiresAt date format")
	ErrExpiresAtPast     = errors.New("expiresAt must be in the future")
	ErrReaderNil         = errors.New("reader is nil")
)

// Not-found errors.
var (
	ErrMediaNotFound     = errors.New("media not found")
	ErrShareLinkNotFound = errors.New("share link not found")
)

// Unauthorized errors for password-protected links.
var (
	ErrPasswordRequired = errors.New("password required")
	ErrInvalidPassword  = errors.New("invalid password")
)

// ExpiredError is the terminal access state for a link whose expiry passed.
// It carries the expiration timestamp so the boundary can surface it.
type ExpiredError struct {
	ExpiredAt time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("share link expired at %s", e.ExpiredAt.Format(time.RFC3339))
}

// DependencyError wraps a failure of the external shortener. The cause is
// preserved for diagnostics and unwrapping.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
