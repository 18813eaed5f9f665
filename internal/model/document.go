package model

import "time"

// Document is the persisted record of one uploaded file's extracted text.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, repository) without coupling to persistence.
//
// A Document is immutable once created: there is no update operation, only
// create, read and delete.
type Document struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	TextContent string    `json:"textContent"`
	CreatedAt   time.Time `json:"createdAt"`
}
