package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService is the PDF registry.
type LibraryService struct {
	store    driven.Storage
	resolver driven.PathResolver
	newID    func() string
}

// NewLibraryService creates a new library service.
// resolver may be nil, in which case every stored path is considered resolvable.
func NewLibraryService(store driven.Storage, resolver driven.PathResolver) *LibraryService {
	return &LibraryService{
		store:    store,
		resolver: resolver,
		newID:    newUUID,
	}
}

// Add inserts or replaces a document.
func (s *LibraryService) Add(ctx context.Context, doc domain.Document) error {
	logger.Debug("library: saving document %s", doc.ID)
	return s.store.Documents().Save(ctx, doc)
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.Documents().Get(ctx, id)
}

// List returns all documents.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.Documents().List(ctx)
}

// FindByPath scans documents for an exact path match. First match wins.
func (s *LibraryService) FindByPath(ctx context.Context, p string) (*domain.Document, error) {
	docs, err := s.store.Documents().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Path == p {
			return &docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Remove deletes a document and everything that belongs to it.
func (s *LibraryService) Remove(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		highlights, err := s.store.Highlights().ListByPDF(ctx, id)
		if err != nil {
			return fmt.Errorf("listing highlights: %w", err)
		}
		for _, h := range highlights {
			if err := s.store.Highlights().Delete(ctx, h.ID); err != nil {
				return fmt.Errorf("deleting highlight %s: %w", h.ID, err)
			}
		}

		bookmarks, err := s.store.Bookmarks().ListByPDF(ctx, id)
		if err != nil {
			return fmt.Errorf("listing bookmarks: %w", err)
		}
		for _, b := range bookmarks {
			if err := s.store.Bookmarks().Delete(ctx, b.ID); err != nil {
				return fmt.Errorf("deleting bookmark %s: %w", b.ID, err)
			}
		}

		if err := s.store.Meta().Delete(ctx, driven.ReadingDirectionKey(id)); err != nil {
			return fmt.Errorf("deleting reading direction: %w", err)
		}

		last, err := s.GetLastOpened(ctx)
		if err != nil {
			return err
		}
		if last == id {
			if err := s.ClearLastOpened(ctx); err != nil {
				return err
			}
		}

		logger.Debug("library: removing document %s (%d highlights, %d bookmarks)",
			id, len(highlights), len(bookmarks))
		return s.store.Documents().Delete(ctx, id)
	})
}

// Open registers the PDF at rawPath, or reuses the document already
// registered there, and records it as last opened.
func (s *LibraryService) Open(ctx context.Context, rawPath, title string) (*domain.Document, error) {
	var doc *domain.Document
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.Register(ctx, rawPath, title)
		if err != nil {
			return err
		}
		return s.SetLastOpened(ctx, doc.ID)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Register returns the document registered at rawPath, creating it when
// the path is new. An empty title defaults to the file name.
func (s *LibraryService) Register(ctx context.Context, rawPath, title string) (*domain.Document, error) {
	normalised, err := domain.NormalisePath(rawPath)
	if err != nil {
		return nil, domain.NewValidationError("path", err.Error())
	}

	var doc *domain.Document
	err = s.store.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.FindByPath(ctx, normalised)
		switch {
		case err == nil:
			doc = existing
			return nil
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		created := domain.Document{
			ID:    documentIDPrefix + s.newID(),
			Title: strings.TrimSpace(title),
			Path:  normalised,
		}
		if created.Title == "" {
			created.Title = path.Base(created.DecodedPath())
		}
		if err := s.store.Documents().Save(ctx, created); err != nil {
			return err
		}
		logger.Debug("library: registered %s as %s", normalised, created.ID)
		doc = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SetLastOpened records id as the last opened document.
func (s *LibraryService) SetLastOpened(ctx context.Context, id string) error {
	return s.store.Meta().Set(ctx, driven.MetaKeyLastPDF, id)
}

// GetLastOpened returns the last opened document id, or "".
func (s *LibraryService) GetLastOpened(ctx context.Context) (string, error) {
	id, _, err := s.store.Meta().Get(ctx, driven.MetaKeyLastPDF)
	return id, err
}

// ClearLastOpened removes the last-opened pointer.
func (s *LibraryService) ClearLastOpened(ctx context.Context) error {
	return s.store.Meta().Delete(ctx, driven.MetaKeyLastPDF)
}

// ResolveLastOpened returns the last opened document if it still resolves,
// clearing the pointer when it does not.
func (s *LibraryService) ResolveLastOpened(ctx context.Context) (*domain.Document, error) {
	id, err := s.GetLastOpened(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domain.ErrNotFound
	}

	doc, err := s.store.Documents().Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("library: last opened document %s no longer exists", id)
		return nil, s.clearAndNotFound(ctx)
	}
	if err != nil {
		return nil, err
	}

	if s.resolver != nil {
		ok, err := s.resolver.Resolvable(ctx, doc.DecodedPath())
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", doc.Path, err)
		}
		if !ok {
			logger.Warn("library: %s is no longer a readable PDF", doc.Path)
			return nil, s.clearAndNotFound(ctx)
		}
	}

	return doc, nil
}

func (s *LibraryService) clearAndNotFound(ctx context.Context) error {
	if err := s.ClearLastOpened(ctx); err != nil {
		return err
	}
	return domain.ErrNotFound
}

// ReadingDirection returns the stored direction, or LTR when unset or invalid.
func (s *LibraryService) ReadingDirection(ctx context.Context, id string) (domain.ReadingDirection, error) {
	value, ok, err := s.store.Meta().Get(ctx, driven.ReadingDirectionKey(id))
	if err != nil {
		return "", err
	}
	dir := domain.ReadingDirection(value)
	if !ok || !dir.IsValid() {
		return domain.ReadingDirectionLTR, nil
	}
	return dir, nil
}

// SetReadingDirection stores the document's reading direction.
func (s *LibraryService) SetReadingDirection(ctx context.Context, id string, dir domain.ReadingDirection) error {
	if !dir.IsValid() {
		return domain.NewValidationError("direction", fmt.Sprintf("must be %q or %q, got %q",
			domain.ReadingDirectionLTR, domain.ReadingDirectionRTL, dir))
	}
	return s.store.Meta().Set(ctx, driven.ReadingDirectionKey(id), dir.String())
}
