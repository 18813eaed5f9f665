package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa/internal/extractor"
	"docqa/internal/model"
	"docqa/internal/repository"
)

var (
	ErrNoFile           = errors.New("No file provided")
	ErrIDRequired       = errors.New("id is required")
	ErrQuestionRequired = errors.New("question is required")
	ErrNotFound         = errors.New("document not found")
	ErrEmptyExtraction  = errors.New("No text content could be extracted from the document")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the document use cases: turning an upload into a
// persisted Document and reading stored records back.
type DocumentService interface {
	// Ingest reads the upload, extracts its text and persists a new Document.
	// A failure during extraction never reaches the repository; a failure
	// during persistence retains nothing. Nothing is retried.
	Ingest(ctx context.Context, r io.Reader, fileName, contentType string) (*model.Document, error)

	// List returns documents newest first using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	extractor extractor.Extractor
	repo      repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(ex extractor.Extractor, repo repository.DocumentRepository) DocumentService {
	return &documentService{extractor: ex, repo: repo}
}

func (s *documentService) Ingest(ctx context.Context, r io.Reader, fileName, contentType string) (*model.Document, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	text, err := s.extractor.Extract(ctx, data, fileName, contentType)
	if err != nil {
		// Extraction failures propagate unchanged; callers match the typed error.
		return nil, err
	}

	// The extractor already guarantees non-empty trimmed output; re-check so a
	// blank document can never be persisted.
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyExtraction
	}

	if strings.TrimSpace(fileName) == "" {
		fileName = "unknown"
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		FileName:    fileName,
		TextContent: text,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	// A malformed id can never match a stored document, and the UUID column
	// would reject it with a query error rather than sql.ErrNoRows.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document by ID. Absence is reported, not treated as an error.
func (s *documentService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}
