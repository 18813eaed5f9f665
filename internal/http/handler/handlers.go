package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/extractor"
	"docqa/internal/service"
)

// ServiceName identifies this API in health responses.
const ServiceName = "docqa"

// questionRequest is the body for POST /documents/question.
type questionRequest struct {
	DocumentID string `json:"documentId"`
	Question   string `json:"question"`
}

// answerResponse is the body for a successful question call.
type answerResponse struct {
	Answer string `json:"answer"`
}

// HealthCheck reports service identity and current time.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   ServiceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadyCheck verifies database connectivity.
// @Summary Readiness check
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /ready [get]
func ReadyCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Dependency unavailable")
		}
		return c.JSON(fiber.Map{"status": "ready"})
	}
}

// LivenessProbe is a bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument ingests a multipart upload: extracts its text and persists a
// new document record.
// @Summary Upload a document (PDF or image) and extract its text
// @Accept mpfd
// @Produce json
// @Param file formData file true "document file"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/upload [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, service.ErrNoFile.Error())
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Ingest(c.UserContext(), f, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			return writeIngestError(c, err)
		}
		return c.JSON(doc)
	}
}

// writeIngestError maps ingestion failures to HTTP responses. Extraction
// failures disclose their reason; persistence failures stay generic.
func writeIngestError(c *fiber.Ctx, err error) error {
	var extErr *extractor.ExtractionError
	switch {
	case errors.Is(err, service.ErrNoFile):
		return writeError(c, fiber.StatusBadRequest, service.ErrNoFile.Error())
	case errors.As(err, &extErr):
		return writeError(c, fiber.StatusInternalServerError, extErr.Error())
	case errors.Is(err, service.ErrEmptyExtraction):
		return writeError(c, fiber.StatusInternalServerError, service.ErrEmptyExtraction.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// GetDocument returns a stored document by id.
// @Summary Get a document by id
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusNotFound, "Document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(doc)
	}
}

// ListDocuments returns stored documents newest first.
// @Summary List documents
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(res)
	}
}

// AskQuestion answers a free-text question about a stored document.
// @Summary Ask a question about a document
// @Accept json
// @Produce json
// @Param request body questionRequest true "document id and question"
// @Success 200 {object} answerResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/question [post]
func AskQuestion(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req questionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		answer, err := svc.Ask(c.UserContext(), req.DocumentID, req.Question)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "Document not found")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "documentId is required")
			case errors.Is(err, service.ErrQuestionRequired):
				return writeError(c, fiber.StatusBadRequest, "question is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "Failed to answer question")
			}
		}
		return c.JSON(answerResponse{Answer: answer})
	}
}
