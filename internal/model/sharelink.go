package model

import "time"

// ShareLinkStatus distinguishes a record that is still mid-creation from one
// whose short code has been issued by the external shortener.
type ShareLinkStatus string

const (
	// ShareLinkProvisional marks a record inserted before the shortener
	// round-trip. Provisional records are owned exclusively by the creating
	// call and never returned from queries.
	ShareLinkProvisional ShareLinkStatus = "provisional"
	// ShareLinkFinalized marks a record carrying its real short code and
	// long URL.
	ShareLinkFinalized ShareLinkStatus = "finalized"
)

// ShareLink grants time-bounded, optionally password-gated access to one
// Media item via an opaque identifier and a shortened URL alias.
type ShareLink struct {
	ID        string          `json:"id"`
	MediaID   string          `json:"media_id"`
	ShortCode string          `json:"short_code"`
	LongURL   string          `json:"long_url"`
	Password  *string         `json:"-"`
	ExpiresAt *time.Time      `json:"expires_at"`
	Status    ShareLinkStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsExpired reports whether the link has expired as of now.
// Expiration is always recomputed from the stored timestamp; it is never
// cached so a record outliving its expiry (e.g. before the purge sweep runs)
// is still treated as expired on every read path.
func (l *ShareLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// HasPassword reports whether the link is password-protected.
func (l *ShareLink) HasPassword() bool {
	return l.Password != nil && *l.Password != ""
}
