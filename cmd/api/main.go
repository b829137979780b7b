package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediashare/docs"
	"mediashare/internal/cleanup"
	"mediashare/internal/config"
	"mediashare/internal/database"
	"mediashare/internal/database/migration"
	handlers "mediashare/internal/http/handler"
	"mediashare/internal/http/middleware"
	"mediashare/internal/otel"
	"mediashare/internal/repository/postgres"
	"mediashare/internal/service"
	"mediashare/internal/shortener"
	"mediashare/internal/storage"
)

// @title Media Share API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	loc := time.UTC

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	shortenerClient, err := shortener.NewHTTPClient(cfg.Shortener)
	if err != nil {
		log.Fatalf("failed to initialize shortener client: %v", err)
	}

	// Initialize repositories and services
	mediaRepo := postgres.NewMediaPostgres(db)
	linkRepo := postgres.NewShareLinkPostgres(db)
	mediaSvc := service.NewMediaService(objStore, mediaRepo, linkRepo)
	linkSvc := service.NewShareLinkService(linkRepo, mediaRepo, shortenerClient, objStore, cfg.FrontendBaseURL)

	// Background purge of expired and abandoned share-link records
	sweeper := cleanup.NewSweeper(linkRepo, cfg.Cleanup)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("failed to start cleanup sweeper: %v", err)
	}
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, mediaSvc, linkSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
