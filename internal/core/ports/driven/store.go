package driven

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// Meta keys used by the core services.
const (
	// MetaKeyLastPDF holds the id of the last opened document.
	MetaKeyLastPDF = "lastPdfId"

	// MetaKeyReadingDirectionPrefix prefixes the per-document reading
	// direction key: readingDirection::<documentId>.
	MetaKeyReadingDirectionPrefix = "readingDirection::"
)

// ReadingDirectionKey returns the meta key for a document's reading direction.
func ReadingDirectionKey(documentID string) string {
	return MetaKeyReadingDirectionPrefix + documentID
}

// Transactor runs a function atomically across partitions.
//
// The context passed to fn carries the open transaction. Every partition
// store called with that context joins the transaction. If fn returns an
// error, every write made through the context is rolled back.
// Nested calls with a context that already carries a transaction join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage is the versioned persistent store.
// Opening is idempotent and applies any missing additive migrations.
type Storage interface {
	Transactor

	// Documents returns the document partition.
	Documents() DocumentStore

	// Highlights returns the highlight partition.
	Highlights() HighlightStore

	// Topics returns the topic partition.
	Topics() TopicStore

	// Bookmarks returns the bookmark partition.
	Bookmarks() BookmarkStore

	// Meta returns the singleton key-value partition.
	Meta() MetaStore

	// SchemaVersion returns the applied schema version.
	SchemaVersion(ctx context.Context) (int, error)

	// Close releases the underlying database.
	Close() error
}

// DocumentStore persists registered documents keyed by id.
type DocumentStore interface {
	// Save inserts or replaces a document.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents in storage order.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every document.
	Clear(ctx context.Context) error
}

// HighlightStore persists highlights keyed by id.
type HighlightStore interface {
	// Save inserts or replaces a highlight and refreshes its index entries.
	Save(ctx context.Context, h domain.Highlight) error

	// Get retrieves a highlight by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Highlight, error)

	// List returns all highlights.
	List(ctx context.Context) ([]domain.Highlight, error)

	// ListByPDF returns the highlights of one document.
	ListByPDF(ctx context.Context, pdfID string) ([]domain.Highlight, error)

	// ListByTopic returns the highlights whose topic set contains topicID.
	ListByTopic(ctx context.Context, topicID string) ([]domain.Highlight, error)

	// Delete removes a highlight. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every highlight.
	Clear(ctx context.Context) error
}

// TopicStore persists the topic forest keyed by id.
type TopicStore interface {
	// Save inserts or replaces a topic.
	Save(ctx context.Context, t domain.Topic) error

	// Get retrieves a topic by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Topic, error)

	// List returns all topics.
	List(ctx context.Context) ([]domain.Topic, error)

	// Delete removes a topic. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every topic.
	Clear(ctx context.Context) error
}

// BookmarkStore persists page bookmarks keyed by id.
type BookmarkStore interface {
	// Save inserts or replaces a bookmark.
	Save(ctx context.Context, b domain.Bookmark) error

	// Get retrieves a bookmark by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Bookmark, error)

	// List returns all bookmarks.
	List(ctx context.Context) ([]domain.Bookmark, error)

	// ListByPDF returns the bookmarks of one document.
	ListByPDF(ctx context.Context, pdfID string) ([]domain.Bookmark, error)

	// Delete removes a bookmark. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every bookmark.
	Clear(ctx context.Context) error
}

// MetaStore is a string key-value partition for singleton values.
type MetaStore interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
