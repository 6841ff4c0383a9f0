package services

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// Ensure BookmarkService implements the interface.
var _ driving.BookmarkService = (*BookmarkService)(nil)

// BookmarkService manages page bookmarks.
type BookmarkService struct {
	store driven.Storage
	newID func() string
	now   func() time.Time
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(store driven.Storage) *BookmarkService {
	return &BookmarkService{
		store: store,
		newID: newUUID,
		now:   time.Now,
	}
}

// Add creates a bookmark.
func (s *BookmarkService) Add(ctx context.Context, pdfID string, page int, title string) (*domain.Bookmark, error) {
	b := domain.Bookmark{
		PDFID: pdfID,
		Page:  page,
		Title: strings.TrimSpace(title),
	}
	err := validation.ValidateStruct(&b,
		validation.Field(&b.PDFID, validation.Required),
		validation.Field(&b.Page, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return nil, toValidationError(err)
	}

	b.ID = bookmarkIDPrefix + s.newID()
	b.CreatedAt = s.now().UnixMilli()
	if err := s.store.Bookmarks().Save(ctx, b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes a bookmark.
func (s *BookmarkService) Delete(ctx context.Context, id string) error {
	return s.store.Bookmarks().Delete(ctx, id)
}

// ListByPDF returns a document's bookmarks by page, then creation time.
func (s *BookmarkService) ListByPDF(ctx context.Context, pdfID string) ([]domain.Bookmark, error) {
	bookmarks, err := s.store.Bookmarks().ListByPDF(ctx, pdfID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bookmarks, func(i, j int) bool {
		if bookmarks[i].Page != bookmarks[j].Page {
			return bookmarks[i].Page < bookmarks[j].Page
		}
		return bookmarks[i].CreatedAt < bookmarks[j].CreatedAt
	})
	return bookmarks, nil
}
