package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay minimal and free of business logic; services carry the pipelines.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, qSvc service.QuestionService) {
	app.Get("/health", HealthCheck())
	app.Get("/ready", ReadyCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/documents/upload", UploadDocument(docSvc))
	app.Post("/documents/question", AskQuestion(qSvc))
	app.Get("/documents", ListDocuments(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
}
