package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"mediashare/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything goes through the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, mediaSvc service.MediaService, linkSvc service.ShareLinkService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	media := api.Group("/media")
	media.Post("/upload", UploadMedia(mediaSvc))
	media.Get("/", ListMedia(mediaSvc))
	media.Get("/:id", GetMedia(mediaSvc))
	media.Get("/:id/file", GetMediaFile(mediaSvc))
	media.Delete("/:id", DeleteMedia(mediaSvc))

	api.Post("/share-links", CreateShareLink(linkSvc))
	api.Get("/share-links/media/:mediaId", ListShareLinksByMedia(linkSvc))
	api.Get("/share-links/:shareLinkId/analytics", ShareLinkAnalytics(linkSvc))
	api.Get("/gallery/:shareLinkId", AccessShareLink(linkSvc))
}
