package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*HighlightService)(nil)

// errBoxTooSmall is returned for boxes at or below domain.MinBoxSize.
var errBoxTooSmall = validation.NewError("validation_box_too_small",
	fmt.Sprintf("must be larger than %gpx in both dimensions", domain.MinBoxSize))

// HighlightService is the highlight repository.
type HighlightService struct {
	store driven.Storage
	newID func() string
	now   func() time.Time
}

// NewHighlightService creates a new highlight service.
func NewHighlightService(store driven.Storage) *HighlightService {
	return &HighlightService{
		store: store,
		newID: newUUID,
		now:   time.Now,
	}
}

// Add inserts or replaces a highlight.
func (s *HighlightService) Add(ctx context.Context, h domain.Highlight) error {
	return s.store.Highlights().Save(ctx, h)
}

// Update inserts or replaces a highlight.
func (s *HighlightService) Update(ctx context.Context, h domain.Highlight) error {
	return s.store.Highlights().Save(ctx, h)
}

// Delete removes a highlight.
func (s *HighlightService) Delete(ctx context.Context, id string) error {
	logger.Debug("highlights: deleting %s", id)
	return s.store.Highlights().Delete(ctx, id)
}

// Get retrieves a highlight by ID.
func (s *HighlightService) Get(ctx context.Context, id string) (*domain.Highlight, error) {
	return s.store.Highlights().Get(ctx, id)
}

// ListByPDF returns the highlights of a document.
func (s *HighlightService) ListByPDF(ctx context.Context, pdfID string) ([]domain.Highlight, error) {
	return s.store.Highlights().ListByPDF(ctx, pdfID)
}

// ListByTopic returns the highlights of a topic.
func (s *HighlightService) ListByTopic(ctx context.Context, topicID string) ([]domain.Highlight, error) {
	return s.store.Highlights().ListByTopic(ctx, topicID)
}

// ListForPage returns the highlights drawn on one page.
func (s *HighlightService) ListForPage(ctx context.Context, pdfID string, page int) ([]domain.Highlight, error) {
	all, err := s.store.Highlights().ListByPDF(ctx, pdfID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Highlight, 0, len(all))
	for _, h := range all {
		if h.Page == page {
			result = append(result, h)
		}
	}
	return result, nil
}

// Create validates a draft and stores it as a new highlight.
func (s *HighlightService) Create(ctx context.Context, draft driving.HighlightDraft) (*domain.Highlight, error) {
	err := validation.ValidateStruct(&draft,
		validation.Field(&draft.PDFID, validation.Required),
		validation.Field(&draft.Page, validation.Required, validation.Min(1)),
		validation.Field(&draft.Box, validation.By(drawable)),
	)
	if err != nil {
		return nil, toValidationError(err)
	}

	h := domain.NewHighlight(highlightIDPrefix+s.newID(), draft.PDFID, draft.Page, draft.Box, s.now())
	h.TopicIDs = uniqueIDs(draft.TopicIDs)
	h.Book = strings.TrimSpace(draft.Book)
	h.Volume = strings.TrimSpace(draft.Volume)
	h.Chapter = strings.TrimSpace(draft.Chapter)
	h.Description = strings.TrimSpace(draft.Description)
	if tags := domain.ParseTags(draft.Tags); len(tags) > 0 {
		h.Tags = tags
	}

	if err := s.store.Highlights().Save(ctx, h); err != nil {
		return nil, err
	}
	logger.Debug("highlights: created %s on %s page %d", h.ID, h.PDFID, h.Page)
	return &h, nil
}

func drawable(value any) error {
	box, ok := value.(domain.Box)
	if !ok {
		return errors.New("must be a box")
	}
	if !box.IsDrawable() {
		return errBoxTooSmall
	}
	return nil
}

// SetTopics replaces a highlight's topic set.
func (s *HighlightService) SetTopics(ctx context.Context, id string, topicIDs []string) (*domain.Highlight, error) {
	var updated *domain.Highlight
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		h, err := s.store.Highlights().Get(ctx, id)
		if err != nil {
			return err
		}
		h.TopicIDs = uniqueIDs(topicIDs)
		updated = h
		return s.store.Highlights().Save(ctx, *h)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// uniqueIDs drops empty and repeated ids, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
