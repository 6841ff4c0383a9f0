package driving

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// TopicService manages the topic forest.
type TopicService interface {
	// List returns all topics.
	List(ctx context.Context) ([]domain.Topic, error)

	// Get retrieves a topic. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Topic, error)

	// Add creates a topic. An empty id is generated. An empty parentID
	// creates a root. The parent is not required to exist.
	Add(ctx context.Context, id, name, parentID string) (*domain.Topic, error)

	// Rename changes a topic's name.
	Rename(ctx context.Context, id, name string) error

	// Move re-parents a topic. An empty newParentID makes it a root.
	// Returns *domain.CycleError if the move would create a cycle.
	Move(ctx context.Context, id, newParentID string) error

	// AnalyzeDeleteImpact reports what Delete would do.
	AnalyzeDeleteImpact(ctx context.Context, id string) (*domain.DeleteImpact, error)

	// Delete removes a childless topic, stripping it from highlights that
	// keep other topics and deleting highlights that had only this topic.
	// Returns *domain.HasChildrenError if the topic has children.
	Delete(ctx context.Context, id string) error

	// Path returns the root-to-topic chain.
	Path(ctx context.Context, id string) ([]domain.Topic, error)

	// FormattedPath returns the path joined with the configured separator.
	FormattedPath(ctx context.Context, id string) (string, error)

	// Graph returns the node/edge projection.
	Graph(ctx context.Context) (*domain.TopicGraph, error)

	// Layout returns positioned topics for graph rendering.
	Layout(ctx context.Context) ([]domain.PositionedTopic, error)

	// Subtree returns the topic and all its descendants.
	Subtree(ctx context.Context, id string) ([]domain.Topic, error)

	// Search returns topics whose name or formatted path contains query,
	// ignoring case.
	Search(ctx context.Context, query string) ([]domain.Topic, error)
}
