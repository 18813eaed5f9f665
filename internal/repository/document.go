package repository

import (
	"context"

	"docqa/internal/model"
)

// DocumentRepository defines persistence for documents using SQL queries only.
// No business logic here; the service layer owns validation and id assignment.
//
// Absence on FindByID is signaled with sql.ErrNoRows, an expected outcome for
// callers to translate, not a server failure.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	// The caller provides ID and CreatedAt; both are immutable afterwards.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns documents newest first with a total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID and reports whether a row existed.
	// Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
