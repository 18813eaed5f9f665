package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docqa/docs"
	"docqa/internal/ai"
	"docqa/internal/config"
	"docqa/internal/database"
	"docqa/internal/database/migration"
	"docqa/internal/extractor"
	handlers "docqa/internal/http/handler"
	"docqa/internal/http/middleware"
	"docqa/internal/otel"
	"docqa/internal/repository/postgres"
	"docqa/internal/service"
)

// @title Document QA API
// @version 1.0
// @description Document ingestion and question answering over extracted text.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	ctx := context.Background()

	// Tracing degrades to noop when no collector is configured
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
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

	// Extraction pipeline: tesseract OCR for images, in-process parsing for PDFs
	ocr := extractor.NewTesseractOCR(cfg.OCR.Binary, cfg.OCR.Languages)
	textExtractor := extractor.New(ocr)

	answerer, err := newAnswerer(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize completion backend: %v", err)
	}

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(textExtractor, docRepo)
	questionSvc := service.NewQuestionService(docRepo, answerer)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadBytes,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	if cfg.LogLevel != "silent" {
		// JSON Logger middleware for structured request logs
		app.Use(middleware.Logger(os.Stdout))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
	}))
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, docSvc, questionSvc)

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

	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newAnswerer selects the completion backend by provider name.
func newAnswerer(ctx context.Context, c config.AIConfig) (ai.Answerer, error) {
	timeout := time.Duration(c.TimeoutSec) * time.Second

	switch c.Provider {
	case "openai":
		return ai.NewOpenAIAnswerer(c.BaseURL, c.APIKey, c.Model, timeout), nil
	default:
		answerer, err := ai.NewGeminiAnswerer(ctx, c.APIKey, c.Model, timeout)
		if err != nil {
			return nil, err
		}
		return answerer, nil
	}
}
