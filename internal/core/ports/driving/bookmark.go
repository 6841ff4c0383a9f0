package driving

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// BookmarkService manages page bookmarks.
type BookmarkService interface {
	// Add creates a bookmark on a page of a document.
	Add(ctx context.Context, pdfID string, page int, title string) (*domain.Bookmark, error)

	// Delete removes a bookmark.
	Delete(ctx context.Context, id string) error

	// ListByPDF returns a document's bookmarks ordered by page.
	ListByPDF(ctx context.Context, pdfID string) ([]domain.Bookmark, error)
}
