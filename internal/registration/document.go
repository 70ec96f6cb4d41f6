package registration

import (
	"context"
	"time"
)

// Document is a persisted registration. The store assigns ID and timestamps.
type Document struct {
	ID        string    `json:"id"`
	Draft               // inlined draft fields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDocument wraps a normalized copy of d. ID and timestamps are left for the
// repository to assign.
func NewDocument(d Draft) *Document {
	return &Document{Draft: d.Normalize()}
}

// ListFilter provides filtering options for listing registrations.
type ListFilter struct {
	// SolutionCategory restricts results to one category. Empty means all.
	SolutionCategory SolutionCategory

	// Limit restricts the number of documents returned. 0 means no limit.
	Limit int
}

// Repository defines the persistence interface for registration documents.
type Repository interface {
	// Insert stores a new document, assigning its ID, CreatedAt and UpdatedAt.
	Insert(ctx context.Context, doc *Document) error

	// FindByID retrieves a document. Returns NotFoundError when absent.
	FindByID(ctx context.Context, id string) (*Document, error)

	// List returns documents newest first.
	List(ctx context.Context, filter ListFilter) ([]*Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
