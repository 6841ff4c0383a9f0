package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// Ensure BackupService implements the interface.
var _ driving.BackupService = (*BackupService)(nil)

// BackupService is the backup codec.
type BackupService struct {
	store driven.Storage
}

// NewBackupService creates a new backup service.
func NewBackupService(store driven.Storage) *BackupService {
	return &BackupService{store: store}
}

// Export reads every partition into a snapshot, in one transaction.
func (s *BackupService) Export(ctx context.Context) (*domain.Backup, error) {
	defer logger.Timed("backup export")()

	var (
		docs       []domain.Document
		highlights []domain.Highlight
		topics     []domain.Topic
		bookmarks  []domain.Bookmark
		last       string
		ok         bool
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if docs, err = s.store.Documents().List(ctx); err != nil {
			return fmt.Errorf("listing documents: %w", err)
		}
		if highlights, err = s.store.Highlights().List(ctx); err != nil {
			return fmt.Errorf("listing highlights: %w", err)
		}
		if topics, err = s.store.Topics().List(ctx); err != nil {
			return fmt.Errorf("listing topics: %w", err)
		}
		if bookmarks, err = s.store.Bookmarks().List(ctx); err != nil {
			return fmt.Errorf("listing bookmarks: %w", err)
		}
		if last, ok, err = s.store.Meta().Get(ctx, driven.MetaKeyLastPDF); err != nil {
			return fmt.Errorf("reading last opened: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Backup{
		SchemaVersion: domain.BackupSchemaVersion,
		PDFs:          docs,
		Highlights:    highlights,
		Topics:        topics,
		Bookmarks:     bookmarks,
	}
	if ok && last != "" {
		snapshot.LastPDFID = &last
	}
	snapshot.Normalise()

	logger.Debug("backup: exported %d documents, %d highlights, %d topics, %d bookmarks",
		len(docs), len(highlights), len(topics), len(bookmarks))
	return snapshot, nil
}

// Import replaces documents, highlights, topics, bookmarks and the
// last-opened pointer with the snapshot, in one transaction.
// Reading directions are left as they are.
func (s *BackupService) Import(ctx context.Context, snapshot *domain.Backup) error {
	if snapshot == nil {
		return domain.NewValidationError("", "backup is empty")
	}
	if snapshot.SchemaVersion > domain.BackupSchemaVersion {
		return unsupportedVersion(snapshot.SchemaVersion)
	}
	defer logger.Timed("backup import")()

	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.store.Documents().Clear(ctx); err != nil {
			return fmt.Errorf("clearing documents: %w", err)
		}
		if err := s.store.Highlights().Clear(ctx); err != nil {
			return fmt.Errorf("clearing highlights: %w", err)
		}
		if err := s.store.Topics().Clear(ctx); err != nil {
			return fmt.Errorf("clearing topics: %w", err)
		}
		if err := s.store.Bookmarks().Clear(ctx); err != nil {
			return fmt.Errorf("clearing bookmarks: %w", err)
		}

		for _, doc := range snapshot.PDFs {
			if err := s.store.Documents().Save(ctx, doc); err != nil {
				return fmt.Errorf("importing document %s: %w", doc.ID, err)
			}
		}
		for _, h := range snapshot.Highlights {
			if h.TopicIDs == nil {
				h.TopicIDs = []string{}
			}
			if err := s.store.Highlights().Save(ctx, h); err != nil {
				return fmt.Errorf("importing highlight %s: %w", h.ID, err)
			}
		}
		for _, t := range snapshot.Topics {
			t.SetParent(t.Parent())
			if err := s.store.Topics().Save(ctx, t); err != nil {
				return fmt.Errorf("importing topic %s: %w", t.ID, err)
			}
		}
		for _, b := range snapshot.Bookmarks {
			if err := s.store.Bookmarks().Save(ctx, b); err != nil {
				return fmt.Errorf("importing bookmark %s: %w", b.ID, err)
			}
		}

		if last := snapshot.LastOpened(); last != "" {
			return s.store.Meta().Set(ctx, driven.MetaKeyLastPDF, last)
		}
		return s.store.Meta().Delete(ctx, driven.MetaKeyLastPDF)
	})
}

// Encode writes the snapshot as two-space indented JSON or as YAML.
func (s *BackupService) Encode(w io.Writer, snapshot *domain.Backup, format domain.BackupFormat) error {
	switch format {
	case domain.BackupFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	case domain.BackupFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Decode reads a snapshot. Missing arrays decode as empty, a missing
// schemaVersion as 1, and missing topicIds as an empty set. Snapshots
// from a newer schema are rejected.
func (s *BackupService) Decode(r io.Reader, format domain.BackupFormat) (*domain.Backup, error) {
	var snapshot domain.Backup
	switch format {
	case domain.BackupFormatJSON:
		if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
			return nil, domain.NewValidationError("", fmt.Sprintf("decoding JSON backup: %v", err))
		}
	case domain.BackupFormatYAML:
		if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil {
			return nil, domain.NewValidationError("", fmt.Sprintf("decoding YAML backup: %v", err))
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	snapshot.Normalise()
	if snapshot.SchemaVersion > domain.BackupSchemaVersion {
		return nil, unsupportedVersion(snapshot.SchemaVersion)
	}
	return &snapshot, nil
}

func unsupportedVersion(version int) error {
	return domain.NewValidationError("schemaVersion",
		fmt.Sprintf("version %d is newer than supported version %d", version, domain.BackupSchemaVersion))
}
