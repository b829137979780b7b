package repository

import (
	"context"
	"errors"
	"time"

	"mediashare/internal/model"
)

// ErrMissingField is returned by Create when a required field is absent.
// Callers inspect it with errors.Is; the wrapped message names the field.
var ErrMissingField = errors.New("required field missing")

// Sort fields accepted by Query. Anything else falls back to SortByCreatedAt.
const (
	SortByCreatedAt = "createdAt"
	SortByExpiresAt = "expiresAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ShareLinkQuery describes the optional filters for listing share links of
// one media item. Nil pointer filters mean "any". When both Expired and
// HasPassword are set they are combined with a logical AND.
type ShareLinkQuery struct {
	Expired     *bool
	HasPassword *bool
	SortBy      string
	SortOrder   string
	Limit       int
	Skip        int
}

// ShareLinkRepository defines data access for share-link records.
//
// Rows move through exactly two states: they are inserted provisional and
// mutated once by Finalize. Query only ever returns finalized rows, so a
// half-created record is never observable outside the call that owns it.
type ShareLinkRepository interface {
	// Create inserts a new share-link record. MediaID, ShortCode, LongURL and
	// ExpiresAt are required; a missing one yields ErrMissingField before any
	// write.
	Create(ctx context.Context, link *model.ShareLink) (*model.ShareLink, error)

	// FindByID returns a share link by its ID regardless of status.
	FindByID(ctx context.Context, id string) (*model.ShareLink, error)

	// Finalize replaces the placeholder short code and long URL of a
	// provisional record and flips its status to finalized. This is the only
	// mutation a share link ever receives.
	Finalize(ctx context.Context, id, shortCode, longURL string) (*model.ShareLink, error)

	// DeleteByID removes a share link. Returns nil if the row did not exist.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAllByMedia removes every share link referencing the media item.
	// Used by the media-deletion cascade.
	DeleteAllByMedia(ctx context.Context, mediaID string) error

	// Query returns finalized share links of one media item matching the
	// filters, plus the total count for the same filters.
	Query(ctx context.Context, mediaID string, q ShareLinkQuery) (*PageResult[model.ShareLink], error)

	// DeleteExpiredBefore removes finalized rows whose expiry passed before
	// cutoff. Returns the number of rows removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteStaleProvisional removes provisional rows created before cutoff.
	// These are leftovers of creations that never reached finalization
	// (e.g. the client aborted mid-request). Returns the rows removed.
	DeleteStaleProvisional(ctx context.Context, cutoff time.Time) (int64, error)
}
