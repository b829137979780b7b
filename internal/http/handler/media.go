package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mediashare/internal/model"
	"mediashare/internal/service"
)

// mediaResponse is the HTTP shape of a media record, extended with the URL
// the file can be fetched from.
type mediaResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

func toMediaResponse(c *fiber.Ctx, m *model.Media) mediaResponse {
	return mediaResponse{
		ID:        m.ID,
		Title:     m.Title,
		Size:      m.Size,
		MimeType:  m.MimeType,
		CreatedAt: m.CreatedAt,
		URL:       c.BaseURL() + "/api/media/" + m.ID + "/file",
	}
}

// UploadMedia stores an uploaded file (multipart/form-data, field name: file).
// An optional "title" form field overrides the display title.
func UploadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		m, err := svc.Upload(c.UserContext(), f, fh.Filename, c.FormValue("title"), ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toMediaResponse(c, m))
	}
}

// ListMedia returns media records with limit & offset pagination.
func ListMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}

		items := make([]mediaResponse, 0, len(res.Items))
		for i := range res.Items {
			items = append(items, toMediaResponse(c, &res.Items[i]))
		}
		return c.JSON(fiber.Map{
			"count": len(items),
			"total": res.Total,
			"data":  items,
		})
	}
}

// GetMedia returns a single media record by ID.
func GetMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(toMediaResponse(c, m))
	}
}

// GetMediaFile streams the stored binary content.
func GetMediaFile(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, m, err := svc.OpenFile(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, m.MimeType)
		return c.SendStream(rc, int(m.Size))
	}
}

// DeleteMedia removes a media item and cascades to its share links.
func DeleteMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
