package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediashare/internal/model"
	"mediashare/internal/repository"
	"mediashare/internal/shortener"
	"mediashare/internal/storage"
)

// fileURLExpiry bounds the lifetime of presigned download URLs handed out
// through share-link access.
const fileURLExpiry = 15 * time.Minute

// CreateShareLinkInput carries the raw creation request.
// ExpiresAt is the RFC3339 string as received; parsing is part of validation
// so a malformed value is rejected before anything is written.
type CreateShareLinkInput struct {
	MediaID   string
	ExpiresAt string
	Password  *string
}

// CreateShareLinkResult is the finalized record plus the full short URL as
// issued by the shortener (the record itself only stores the code).
type CreateShareLinkResult struct {
	Link     *model.ShareLink
	ShortURL string
}

// MediaDescriptor is the public shape of a media item reached through a link.
type MediaDescriptor struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
	FileURL   string    `json:"fileUrl"`
}

// ShareLinkInfo is the link metadata exposed alongside access and analytics.
type ShareLinkInfo struct {
	ID        string     `json:"id"`
	ExpiresAt *time.Time `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AccessResult is returned when a link reaches the accessible state.
type AccessResult struct {
	Media     MediaDescriptor `json:"media"`
	ShareLink ShareLinkInfo   `json:"shareLink"`
}

// AnalyticsResult pairs link metadata with the shortener's raw statistics
// payload, passed through verbatim.
type AnalyticsResult struct {
	ShareLink ShareLinkInfo  `json:"shareLink"`
	Analytics map[string]any `json:"analytics"`
}

// ListShareLinksOptions mirrors the list-endpoint filters.
type ListShareLinksOptions struct {
	Expired     *bool
	HasPassword *bool
	SortBy      string
	SortOrder   string
	Limit       int
	Skip        int
}

// ShareLinkEntry is one row of a listing, with expiration and password
// presence computed at evaluation time.
type ShareLinkEntry struct {
	ID          string     `json:"id"`
	MediaID     string     `json:"mediaId"`
	ShortCode   string     `json:"shortCode"`
	LongURL     string     `json:"longUrl"`
	HasPassword bool       `json:"hasPassword"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	IsExpired   bool       `json:"isExpired"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListFilters echoes the normalized filters a listing was executed with.
type ListFilters struct {
	Expired     *bool  `json:"expired"`
	HasPassword *bool  `json:"hasPassword"`
	SortBy      string `json:"sortBy"`
	SortOrder   string `json:"sortOrder"`
	Limit       int    `json:"limit"`
	Skip        int    `json:"skip"`
}

// ShareLinkListResult is the service-level DTO for a listing.
type ShareLinkListResult struct {
	Count      int              `json:"count"`
	Total      int              `json:"total"`
	Filters    ListFilters      `json:"filters"`
	ShareLinks []ShareLinkEntry `json:"shareLinks"`
}

// ShareLinkService orchestrates the share-link lifecycle: two-phase creation
// against the external shortener, expiration- and password-gated access, and
// analytics proxying.
type ShareLinkService interface {
	// Create runs the two-phase creation: provisional record, shortener
	// round-trip, finalization. Either a fully finalized record is returned
	// or no record persists.
	Create(ctx context.Context, in CreateShareLinkInput) (*CreateShareLinkResult, error)

	// Access resolves a link to its media. Outcomes: ErrShareLinkNotFound,
	// *ExpiredError, ErrPasswordRequired / ErrInvalidPassword, or success.
	Access(ctx context.Context, id, password string) (*AccessResult, error)

	// Analytics proxies the shortener's statistics for a link. When no
	// password is supplied the stored one (if any) is used.
	Analytics(ctx context.Context, id, password string) (*AnalyticsResult, error)

	// ListByMedia returns the finalized share links of one media item.
	ListByMedia(ctx context.Context, mediaID string, opts ListShareLinksOptions) (*ShareLinkListResult, error)
}

type shareLinkService struct {
	links     repository.ShareLinkRepository
	media     repository.MediaRepository
	shortener shortener.Client
	store     storage.Storage

	frontendBaseURL string
	now             func() time.Time
}

// NewShareLinkService constructs a ShareLinkService. frontendBaseURL is the
// public base the long access URLs are built from.
func NewShareLinkService(
	links repository.ShareLinkRepository,
	media repository.MediaRepository,
	sh shortener.Client,
	store storage.Storage,
	frontendBaseURL string,
) ShareLinkService {
	return &shareLinkService{
		links:           links,
		media:           media,
		shortener:       sh,
		store:           store,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		now:             time.Now,
	}
}

func (s *shareLinkService) Create(ctx context.Context, in CreateShareLinkInput) (*CreateShareLinkResult, error) {
	if in.MediaID == "" {
		return nil, ErrMediaIDRequired
	}
	if in.ExpiresAt == "" {
		return nil, ErrExpiresAtRequired
	}

	if _, err := s.media.FindByID(ctx, in.MediaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339, in.ExpiresAt)
	if err != nil {
		return nil, ErrExpiresAtInvalid
	}
	now := s.now().UTC()
	if !expiresAt.After(now) {
		return nil, ErrExpiresAtPast
	}

	var password *string
	if in.Password != nil && *in.Password != "" {
		password = in.Password
	}

	// Phase one: a provisional record whose placeholder short code is unique
	// by construction, so concurrent creations cannot collide. The record is
	// invisible to queries until finalized.
	provisional := &model.ShareLink{
		ID:        uuid.New().String(),
		MediaID:   in.MediaID,
		ShortCode: "prov_" + uuid.New().String(),
		LongURL:   s.frontendBaseURL + "/gallery/pending",
		Password:  password,
		ExpiresAt: &expiresAt,
		Status:    model.ShareLinkProvisional,
		CreatedAt: now,
	}
	stored, err := s.links.Create(ctx, provisional)
	if err != nil {
		return nil, fmt.Errorf("create provisional share link: %w", err)
	}

	// Phase two: the real long URL exists only now that the record ID is
	// known. A shortener failure triggers the compensating delete so no
	// half-created record survives.
	longURL := s.frontendBaseURL + "/gallery/" + stored.ID
	shortURL, err := s.shortener.Shorten(ctx, longURL, password)
	if err != nil {
		if delErr := s.links.DeleteByID(ctx, stored.ID); delErr != nil {
			return nil, &DependencyError{Op: "shorten url", Err: fmt.Errorf("%v; cleanup delete failed: %v", err, delErr)}
		}
		return nil, &DependencyError{Op: "shorten url", Err: err}
	}

	finalized, err := s.links.Finalize(ctx, stored.ID, extractShortCode(shortURL), longURL)
	if err != nil {
		return nil, fmt.Errorf("finalize share link: %w", err)
	}

	return &CreateShareLinkResult{Link: finalized, ShortURL: shortURL}, nil
}

// extractShortCode takes the trailing path segment of a short URL.
func extractShortCode(shortURL string) string {
	trimmed := strings.TrimRight(shortURL, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 && i < len(trimmed)-1 {
		return trimmed[i+1:]
	}
	return shortURL
}

func (s *shareLinkService) Access(ctx context.Context, id, password string) (*AccessResult, error) {
	link, err := s.findLink(ctx, id)
	if err != nil {
		return nil, err
	}

	if link.IsExpired(s.now()) {
		return nil, &ExpiredError{ExpiredAt: *link.ExpiresAt}
	}

	if link.HasPassword() {
		if password == "" {
			return nil, ErrPasswordRequired
		}
		if password != *link.Password {
			return nil, ErrInvalidPassword
		}
	}

	m, err := s.media.FindByID(ctx, link.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The link outlived its target.
			return nil, ErrShareLinkNotFound
		}
		return nil, err
	}

	fileURL, err := s.store.PresignGet(ctx, m.StoragePath, fileURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign media url: %w", err)
	}

	return &AccessResult{
		Media: MediaDescriptor{
			ID:        m.ID,
			Title:     m.Title,
			Size:      m.Size,
			MimeType:  m.MimeType,
			CreatedAt: m.CreatedAt,
			FileURL:   fileURL,
		},
		ShareLink: ShareLinkInfo{
			ID:        link.ID,
			ExpiresAt: link.ExpiresAt,
			CreatedAt: link.CreatedAt,
		},
	}, nil
}

func (s *shareLinkService) Analytics(ctx context.Context, id, password string) (*AnalyticsResult, error) {
	link, err := s.findLink(ctx, id)
	if err != nil {
		return nil, err
	}

	statsPassword := link.Password
	if password != "" {
		statsPassword = &password
	}

	stats, err := s.shortener.Stats(ctx, link.ShortCode, statsPassword)
	if err != nil {
		return nil, &DependencyError{Op: "short url stats", Err: err}
	}

	return &AnalyticsResult{
		ShareLink: ShareLinkInfo{
			ID:        link.ID,
			ExpiresAt: link.ExpiresAt,
			CreatedAt: link.CreatedAt,
		},
		Analytics: stats,
	}, nil
}

func (s *shareLinkService) ListByMedia(ctx context.Context, mediaID string, opts ListShareLinksOptions) (*ShareLinkListResult, error) {
	if mediaID == "" {
		return nil, ErrMediaIDRequired
	}
	if _, err := s.media.FindByID(ctx, mediaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	q := repository.ShareLinkQuery{
		Expired:     opts.Expired,
		HasPassword: opts.HasPassword,
		SortBy:      normalizeSortBy(opts.SortBy),
		SortOrder:   normalizeSortOrder(opts.SortOrder),
		Limit:       opts.Limit,
		Skip:        opts.Skip,
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	res, err := s.links.Query(ctx, mediaID, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]ShareLinkEntry, 0, len(res.Items))
	for _, l := range res.Items {
		entries = append(entries, ShareLinkEntry{
			ID:          l.ID,
			MediaID:     l.MediaID,
			ShortCode:   l.ShortCode,
			LongURL:     l.LongURL,
			HasPassword: l.HasPassword(),
			ExpiresAt:   l.ExpiresAt,
			IsExpired:   l.IsExpired(now),
			CreatedAt:   l.CreatedAt,
		})
	}

	return &ShareLinkListResult{
		Count: len(entries),
		Total: res.Total,
		Filters: ListFilters{
			Expired:     q.Expired,
			HasPassword: q.HasPassword,
			SortBy:      q.SortBy,
			SortOrder:   q.SortOrder,
			Limit:       q.Limit,
			Skip:        q.Skip,
		},
		ShareLinks: entries,
	}, nil
}

func (s *shareLinkService) findLink(ctx context.Context, id string) (*model.ShareLink, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	link, err := s.links.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShareLinkNotFound
		}
		return nil, err
	}
	// A provisional record belongs to the creation that made it and is not
	// addressable from outside.
	if link.Status != model.ShareLinkFinalized {
		return nil, ErrShareLinkNotFound
	}
	return link, nil
}

func normalizeSortBy(v string) string {
	if v == repository.SortByExpiresAt {
		return repository.SortByExpiresAt
	}
	return repository.SortByCreatedAt
}

func normalizeSortOrder(v string) string {
	if v == repository.SortAsc {
		return repository.SortAsc
	}
	return repository.SortDesc
}
