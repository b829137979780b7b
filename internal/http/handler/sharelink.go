package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mediashare/internal/service"
)

type createShareLinkRequest struct {
	MediaID   string  `json:"mediaId"`
	ExpiresAt string  `json:"expiresAt"`
	Password  *string `json:"password"`
}

type createShareLinkResponse struct {
	ID        string     `json:"id"`
	MediaID   string     `json:"mediaId"`
	ShortCode string     `json:"shortCode"`
	ShortURL  string     `json:"shortUrl"`
	LongURL   string     `json:"longUrl"`
	ExpiresAt *time.Time `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateShareLink creates a share link for a media item.
func CreateShareLink(svc service.ShareLinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createShareLinkRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		res, err := svc.Create(c.UserContext(), service.CreateShareLinkInput{
			MediaID:   req.MediaID,
			ExpiresAt: req.ExpiresAt,
			Password:  req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(createShareLinkResponse{
			ID:        res.Link.ID,
			MediaID:   res.Link.MediaID,
			ShortCode: res.Link.ShortCode,
			ShortURL:  res.ShortURL,
			LongURL:   res.Link.LongURL,
			ExpiresAt: res.Link.ExpiresAt,
			CreatedAt: res.Link.CreatedAt,
		})
	}
}

// AccessShareLink resolves a share link to its media. Distinct outcomes:
// 404 unknown link or deleted media, 410 expired (with the timestamp),
// 401 missing/wrong password, 200 with the media descriptor.
func AccessShareLink(svc service.ShareLinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("shareLinkId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Access(c.UserContext(), id, c.Query("password"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ShareLinkAnalytics proxies the shortener's click statistics for a link.
func ShareLinkAnalytics(svc service.ShareLinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("shareLinkId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Analytics(c.UserContext(), id, c.Query("password"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListShareLinksByMedia lists the share links of one media item with
// expiration/password filters, sorting and pagination.
func ListShareLinksByMedia(svc service.ShareLinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mediaID := c.Params("mediaId")
		if _, err := uuid.Parse(mediaID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		opts := service.ListShareLinksOptions{
			SortBy:    c.Query("sortBy"),
			SortOrder: c.Query("sortOrder"),
		}

		var err error
		if opts.Expired, err = optionalBool(c.Query("expired")); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "expired must be true or false")
		}
		if opts.HasPassword, err = optionalBool(c.Query("hasPassword")); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "hasPassword must be true or false")
		}
		if v := c.Query("limit"); v != "" {
			if opts.Limit, err = strconv.Atoi(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
			}
		}
		if v := c.Query("skip"); v != "" {
			if opts.Skip, err = strconv.Atoi(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_SKIP", "invalid skip")
			}
		}

		res, err := svc.ListByMedia(c.UserContext(), mediaID, opts)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func optionalBool(v string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
