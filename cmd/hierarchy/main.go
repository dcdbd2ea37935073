package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fms/internal/auth"
	"fms/internal/client"
	"fms/internal/config"
	"fms/internal/database"
	"fms/internal/database/migration"
	handlers "fms/internal/http/handler"
	"fms/internal/http/middleware"
	"fms/internal/otel"
	"fms/internal/repository/postgres"
	"fms/internal/service"
	"fms/internal/storage"
)

func main() {
	ctx := context.Background()
	loc := time.UTC

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdown, err := otel.Init(ctx, loc, "fms-hierarchy")
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdown(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host, migration.Hierarchy); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	verifier, err := auth.NewVerifier(cfg.JWT)
	if err != nil {
		log.Fatalf("failed to load JWT public key: %v", err)
	}

	folderRepo := postgres.NewFolderPostgres(db)
	versions := client.NewVersionClient(cfg.Peers)
	folderSvc := service.NewFolderService(folderRepo, versions, store)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterHierarchyRoutes(app, db, folderSvc, middleware.Authenticate(verifier))

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newStore selects the blob backend: local disk by default, S3-compatible
// when STORAGE_BACKEND=s3.
func newStore(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.Upload.Backend == "s3" {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewFS(cfg.Upload)
}
