package services

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// Ensure TopicService implements the interface.
var _ driving.TopicService = (*TopicService)(nil)

var nameRules = []validation.Rule{
	validation.Required.Error("must not be empty"),
}

// TopicService is the topic hierarchy engine.
type TopicService struct {
	store     driven.Storage
	separator string
	layout    domain.LayoutOptions
	newID     func() string
}

// NewTopicService creates a new topic service with default display options.
func NewTopicService(store driven.Storage) *TopicService {
	return &TopicService{
		store:     store,
		separator: domain.DefaultPathSeparator,
		layout:    domain.DefaultLayoutOptions(),
		newID:     newUUID,
	}
}

// SetDisplayOptions overrides the breadcrumb separator and layout spacing.
// Zero values keep the defaults.
func (s *TopicService) SetDisplayOptions(separator string, layout domain.LayoutOptions) {
	if separator != "" {
		s.separator = separator
	}
	if layout.SpacingX > 0 {
		s.layout.SpacingX = layout.SpacingX
	}
	if layout.SpacingY > 0 {
		s.layout.SpacingY = layout.SpacingY
	}
}

// List returns all topics.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	return s.store.Topics().List(ctx)
}

// Get retrieves a topic by ID.
func (s *TopicService) Get(ctx context.Context, id string) (*domain.Topic, error) {
	return s.store.Topics().Get(ctx, id)
}

// Add creates a topic, or replaces the one stored under id.
// A parent that would put the topic on a cycle is refused with a CycleError.
func (s *TopicService) Add(ctx context.Context, id, name, parentID string) (*domain.Topic, error) {
	name = normaliseName(name)
	if err := validation.Validate(name, nameRules...); err != nil {
		return nil, domain.NewValidationError("name", err.Error())
	}
	if id == "" {
		id = s.newID()
	}

	t := domain.NewTopic(id, name, parentID)
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		// Re-adding an existing id re-parents it, so it gets the same
		// ancestor walk as Move. Dangling parent links may already
		// point at a new id.
		if parentID != "" {
			topics, err := s.store.Topics().List(ctx)
			if err != nil {
				return err
			}
			if createsCycle(indexTopics(topics), id, parentID) {
				logger.Debug("topics: refusing to add %s under %s", id, parentID)
				return &domain.CycleError{TopicID: id, ParentID: parentID}
			}
		}
		return s.store.Topics().Save(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("topics: added %s (%q) under %q", t.ID, t.Name, t.Parent())
	return &t, nil
}

// Rename changes a topic's name.
func (s *TopicService) Rename(ctx context.Context, id, name string) error {
	name = normaliseName(name)
	if err := validation.Validate(name, nameRules...); err != nil {
		return domain.NewValidationError("name", err.Error())
	}

	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.store.Topics().Get(ctx, id)
		if err != nil {
			return err
		}
		t.Name = name
		return s.store.Topics().Save(ctx, *t)
	})
}

// Move re-parents a topic, refusing moves that would create a cycle.
//
// The ancestor walk starts at newParentID and follows parent links until
// it reaches a root, a missing topic or a topic it has already visited.
// Meeting id on the way means newParentID is id or one of its descendants.
func (s *TopicService) Move(ctx context.Context, id, newParentID string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.store.Topics().Get(ctx, id)
		if err != nil {
			return err
		}

		if newParentID != "" {
			topics, err := s.store.Topics().List(ctx)
			if err != nil {
				return err
			}
			if createsCycle(indexTopics(topics), id, newParentID) {
				logger.Debug("topics: refusing to move %s under %s", id, newParentID)
				return &domain.CycleError{TopicID: id, ParentID: newParentID}
			}
		}

		t.SetParent(newParentID)
		logger.Debug("topics: moved %s under %q", id, newParentID)
		return s.store.Topics().Save(ctx, *t)
	})
}

func createsCycle(byID map[string]domain.Topic, id, newParentID string) bool {
	visited := make(map[string]bool)
	for cur := newParentID; cur != ""; {
		if cur == id {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		parent, ok := byID[cur]
		if !ok {
			return false
		}
		cur = parent.Parent()
	}
	return false
}

// AnalyzeDeleteImpact reports what Delete would do.
// A highlight counts as multi-topic when it keeps at least one topic
// after id is removed from its set.
func (s *TopicService) AnalyzeDeleteImpact(ctx context.Context, id string) (*domain.DeleteImpact, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	highlights, err := s.store.Highlights().ListByTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	impact := &domain.DeleteImpact{
		TopicID:                      id,
		HighlightsAffectedMultiTopic: []domain.Highlight{},
		HighlightsAffectedSoleTopic:  []domain.Highlight{},
	}
	impact.ChildrenCount = len(childrenOf(topics)[id])
	impact.HasChildren = impact.ChildrenCount > 0

	for _, h := range highlights {
		if len(h.WithoutTopic(id).TopicIDs) > 0 {
			impact.HighlightsAffectedMultiTopic = append(impact.HighlightsAffectedMultiTopic, h)
		} else {
			impact.HighlightsAffectedSoleTopic = append(impact.HighlightsAffectedSoleTopic, h)
		}
	}
	return impact, nil
}

// Delete removes a childless topic and cleans up its highlights in one
// transaction.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.store.Topics().Get(ctx, id); err != nil {
			return err
		}

		impact, err := s.AnalyzeDeleteImpact(ctx, id)
		if err != nil {
			return err
		}
		if impact.HasChildren {
			return &domain.HasChildrenError{TopicID: id, ChildrenCount: impact.ChildrenCount}
		}

		for _, h := range impact.HighlightsAffectedMultiTopic {
			if err := s.store.Highlights().Save(ctx, h.WithoutTopic(id)); err != nil {
				return fmt.Errorf("updating highlight %s: %w", h.ID, err)
			}
		}
		for _, h := range impact.HighlightsAffectedSoleTopic {
			if err := s.store.Highlights().Delete(ctx, h.ID); err != nil {
				return fmt.Errorf("deleting highlight %s: %w", h.ID, err)
			}
		}

		logger.Debug("topics: deleted %s (%d highlights kept, %d deleted)", id,
			len(impact.HighlightsAffectedMultiTopic), len(impact.HighlightsAffectedSoleTopic))
		return s.store.Topics().Delete(ctx, id)
	})
}

// Path returns the root-to-topic chain.
func (s *TopicService) Path(ctx context.Context, id string) ([]domain.Topic, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	path := BuildPath(topics, id)
	if len(path) == 0 {
		return nil, domain.ErrNotFound
	}
	return path, nil
}

// FormattedPath returns the topic's breadcrumb.
func (s *TopicService) FormattedPath(ctx context.Context, id string) (string, error) {
	path, err := s.Path(ctx, id)
	if err != nil {
		return "", err
	}
	return FormatPath(path, s.separator), nil
}

// Graph returns the node/edge projection of all topics.
func (s *TopicService) Graph(ctx context.Context) (*domain.TopicGraph, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	graph := BuildGraph(topics)
	return &graph, nil
}

// Layout returns positioned topics.
func (s *TopicService) Layout(ctx context.Context) ([]domain.PositionedTopic, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeLayout(topics, s.layout), nil
}

// Subtree returns the topic and its descendants.
func (s *TopicService) Subtree(ctx context.Context, id string) ([]domain.Topic, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	sub := Subtree(topics, id)
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// Search returns topics whose name or path matches query.
func (s *TopicService) Search(ctx context.Context, query string) ([]domain.Topic, error) {
	topics, err := s.store.Topics().List(ctx)
	if err != nil {
		return nil, err
	}
	return SearchTopics(topics, query, s.separator), nil
}
