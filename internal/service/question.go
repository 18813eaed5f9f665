package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docqa/internal/ai"
	"docqa/internal/repository"
)

// QuestionService answers free-text questions about a stored document.
// Each call is stateless; no conversation history is kept.
type QuestionService interface {
	// Ask fetches the document and runs one completion call over its full text.
	// The Answerer is never invoked when the document does not exist.
	Ask(ctx context.Context, documentID, question string) (string, error)
}

type questionService struct {
	repo     repository.DocumentRepository
	answerer ai.Answerer
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(repo repository.DocumentRepository, answerer ai.Answerer) QuestionService {
	return &questionService{repo: repo, answerer: answerer}
}

func (s *questionService) Ask(ctx context.Context, documentID, question string) (string, error) {
	if strings.TrimSpace(documentID) == "" {
		return "", ErrIDRequired
	}
	if strings.TrimSpace(question) == "" {
		return "", ErrQuestionRequired
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return "", ErrNotFound
	}

	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetch document: %w", err)
	}

	answer, err := s.answerer.Answer(ctx, question, doc.TextContent)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return answer, nil
}
