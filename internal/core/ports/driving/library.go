package driving

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// LibraryService is the registry of PDF documents and the last-opened pointer.
type LibraryService interface {
	// Add inserts or replaces a document. The path is stored as given.
	Add(ctx context.Context, doc domain.Document) error

	// Get retrieves a document. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// FindByPath returns the first document whose path equals path exactly.
	// Returns domain.ErrNotFound if none matches.
	FindByPath(ctx context.Context, path string) (*domain.Document, error)

	// Remove deletes a document together with its highlights, bookmarks
	// and reading direction, and clears the last-opened pointer if it
	// referenced the document. All or nothing.
	Remove(ctx context.Context, id string) error

	// Open normalises path, reuses or registers the document at it and
	// records it as last opened.
	Open(ctx context.Context, path, title string) (*domain.Document, error)

	// Register normalises path and reuses or creates its document without
	// touching the last-opened pointer.
	Register(ctx context.Context, path, title string) (*domain.Document, error)

	// SetLastOpened records id as the last opened document.
	SetLastOpened(ctx context.Context, id string) error

	// GetLastOpened returns the last opened document id, or "".
	GetLastOpened(ctx context.Context) (string, error)

	// ClearLastOpened removes the last-opened pointer.
	ClearLastOpened(ctx context.Context) error

	// ResolveLastOpened returns the last opened document if its record
	// exists and its path still resolves. Otherwise it clears the pointer
	// and returns domain.ErrNotFound.
	ResolveLastOpened(ctx context.Context) (*domain.Document, error)

	// ReadingDirection returns the document's direction, defaulting to LTR.
	ReadingDirection(ctx context.Context, id string) (domain.ReadingDirection, error)

	// SetReadingDirection stores the document's direction.
	SetReadingDirection(ctx context.Context, id string, dir domain.ReadingDirection) error
}
