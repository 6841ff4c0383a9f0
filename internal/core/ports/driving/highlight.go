package driving

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// HighlightDraft is the input for creating a highlight from a drawn box.
type HighlightDraft struct {
	PDFID       string     `json:"pdfId"`
	Page        int        `json:"page"`
	Box         domain.Box `json:"box"`
	TopicIDs    []string   `json:"topicIds"`
	Book        string     `json:"book"`
	Volume      string     `json:"volume"`
	Chapter     string     `json:"chapter"`
	Tags        string     `json:"tags"` // comma separated
	Description string     `json:"description"`
}

// HighlightService manages highlights.
type HighlightService interface {
	// Add inserts or replaces a highlight without validation.
	Add(ctx context.Context, h domain.Highlight) error

	// Update is identical to Add.
	Update(ctx context.Context, h domain.Highlight) error

	// Delete removes a highlight. Missing ids are not an error.
	Delete(ctx context.Context, id string) error

	// Get retrieves a highlight. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Highlight, error)

	// ListByPDF returns the highlights of a document.
	ListByPDF(ctx context.Context, pdfID string) ([]domain.Highlight, error)

	// ListByTopic returns the highlights whose topic set contains topicID.
	ListByTopic(ctx context.Context, topicID string) ([]domain.Highlight, error)

	// ListForPage returns the highlights of one page of a document.
	ListForPage(ctx context.Context, pdfID string, page int) ([]domain.Highlight, error)

	// Create validates a draft and stores it as a new highlight.
	Create(ctx context.Context, draft HighlightDraft) (*domain.Highlight, error)

	// SetTopics replaces a highlight's topic set, dropping duplicates.
	SetTopics(ctx context.Context, id string, topicIDs []string) (*domain.Highlight, error)
}
