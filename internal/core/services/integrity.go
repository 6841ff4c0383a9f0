package services

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// Ensure IntegrityService implements the interface.
var _ driving.IntegrityService = (*IntegrityService)(nil)

// IntegrityService audits the store for dangling references.
type IntegrityService struct {
	store driven.Storage
}

// NewIntegrityService creates a new integrity service.
func NewIntegrityService(store driven.Storage) *IntegrityService {
	return &IntegrityService{store: store}
}

// Audit lists every referential gap. It never writes.
func (s *IntegrityService) Audit(ctx context.Context) (*domain.IntegrityReport, error) {
	logger.Section("Integrity audit")

	docs, err := s.store.Documents().List(ctx)
	if err != nil {
		return nil, err
	}
	highlights, err := s.store.Highlights().List(ctx)
	if err != nil {
		return nil, err
	}
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.store.Bookmarks().List(ctx)
	if err != nil {
		return nil, err
	}
	last, _, err := s.store.Meta().Get(ctx, driven.MetaKeyLastPDF)
	if err != nil {
		return nil, err
	}

	docIDs := make(map[string]bool, len(docs))
	for _, d := range docs {
		docIDs[d.ID] = true
	}
	byID := indexTopics(topics)

	report := &domain.IntegrityReport{
		Documents:  len(docs),
		Highlights: len(highlights),
		Topics:     len(topics),
		Bookmarks:  len(bookmarks),
		Gaps:       []domain.ReferentialGap{},
	}
	gap := func(kind domain.GapKind, recordID, missingID string) {
		g := domain.ReferentialGap{Kind: kind, RecordID: recordID, MissingID: missingID}
		logger.Debug("audit: %s", g)
		report.Gaps = append(report.Gaps, g)
	}

	for _, h := range highlights {
		if !docIDs[h.PDFID] {
			gap(domain.GapHighlightDocument, h.ID, h.PDFID)
		}
		for _, topicID := range h.TopicIDs {
			if _, ok := byID[topicID]; !ok {
				gap(domain.GapHighlightTopic, h.ID, topicID)
			}
		}
	}

	for _, t := range topics {
		if t.IsRoot() {
			continue
		}
		if _, ok := byID[t.Parent()]; !ok {
			gap(domain.GapTopicParent, t.ID, t.Parent())
			continue
		}
		if onCycle(byID, t.ID) {
			gap(domain.GapTopicCycle, t.ID, "")
		}
	}

	for _, b := range bookmarks {
		if !docIDs[b.PDFID] {
			gap(domain.GapBookmarkDocument, b.ID, b.PDFID)
		}
	}

	if last != "" && !docIDs[last] {
		gap(domain.GapLastOpened, "", last)
	}

	logger.Info("audit: %d gap(s) found", len(report.Gaps))
	return report, nil
}

// onCycle reports whether following parent links from id leads back to id.
func onCycle(byID map[string]domain.Topic, id string) bool {
	visited := make(map[string]bool)
	cur := byID[id].Parent()
	for cur != "" && !visited[cur] {
		if cur == id {
			return true
		}
		visited[cur] = true
		t, ok := byID[cur]
		if !ok {
			return false
		}
		cur = t.Parent()
	}
	return false
}
