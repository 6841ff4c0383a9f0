package domain

// Topic is a named node in the topic forest.
// A nil or empty ParentID makes the topic a root.
type Topic struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	ParentID *string `json:"parentId" yaml:"parentId"`
}

// NewTopic creates a topic. An empty parentID creates a root.
func NewTopic(id, name, parentID string) Topic {
	t := Topic{ID: id, Name: name}
	t.SetParent(parentID)
	return t
}

// IsRoot reports whether the topic has no parent.
func (t Topic) IsRoot() bool {
	return t.ParentID == nil || *t.ParentID == ""
}

// Parent returns the parent id, or "" for roots.
func (t Topic) Parent() string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}

// SetParent re-parents the topic. An empty id makes it a root.
func (t *Topic) SetParent(parentID string) {
	if parentID == "" {
		t.ParentID = nil
		return
	}
	p := parentID
	t.ParentID = &p
}

// TopicGraph is the node/edge projection of the topic forest used by
// graph renderers.
type TopicGraph struct {
	Nodes []TopicNode `json:"nodes"`
	Edges []TopicEdge `json:"edges"`
}

// TopicNode is a graph node.
type TopicNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// TopicEdge connects a parent (Source) to a child (Target).
type TopicEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// PositionedTopic is a topic with layout coordinates.
type PositionedTopic struct {
	Topic Topic   `json:"topic"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// LayoutOptions controls tree layout spacing.
type LayoutOptions struct {
	// SpacingX is the column width between leaves.
	SpacingX float64

	// SpacingY is the row height per depth level.
	SpacingY float64
}

// DefaultLayoutOptions returns the spacing used by the graph view.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{SpacingX: 220, SpacingY: 140}
}

// DefaultPathSeparator joins topic names in breadcrumb paths.
const DefaultPathSeparator = " > "

// DeleteImpact describes what deleting a topic would do.
type DeleteImpact struct {
	// TopicID is the topic being analysed.
	TopicID string `json:"topicId"`

	// HasChildren is true when deletion is blocked.
	HasChildren bool `json:"hasChildren"`

	// ChildrenCount is the number of direct children.
	ChildrenCount int `json:"childrenCount"`

	// HighlightsAffectedMultiTopic survive, losing only this membership.
	HighlightsAffectedMultiTopic []Highlight `json:"highlightsAffectedMultiTopic"`

	// HighlightsAffectedSoleTopic are deleted outright.
	HighlightsAffectedSoleTopic []Highlight `json:"highlightsAffectedSoleTopic"`
}

// CanDelete reports whether the topic can be deleted right now.
func (d DeleteImpact) CanDelete() bool {
	return !d.HasChildren
}
