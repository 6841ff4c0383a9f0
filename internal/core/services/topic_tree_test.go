package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

func topicIDs(topics []domain.Topic) []string {
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func positionsByID(positioned []domain.PositionedTopic) map[string]domain.PositionedTopic {
	byID := make(map[string]domain.PositionedTopic, len(positioned))
	for _, p := range positioned {
		byID[p.Topic.ID] = p
	}
	return byID
}

func TestBuildPath(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("c", "C", "b"),
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("b", "B", "a"),
	}

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"root", "a", []string{"a"}},
		{"leaf", "c", []string{"a", "b", "c"}},
		{"unknown", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, topicIDs(BuildPath(topics, tt.id)))
		})
	}
}

func TestBuildPath_DanglingParent(t *testing.T) {
	topics := []domain.Topic{domain.NewTopic("orphan", "Orphan", "gone")}

	path := BuildPath(topics, "orphan")

	assert.Equal(t, []string{"orphan"}, topicIDs(path))
}

func TestBuildPath_TerminatesOnCycle(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("x", "X", "y"),
		domain.NewTopic("y", "Y", "x"),
	}

	path := BuildPath(topics, "x")

	assert.Equal(t, []string{"y", "x"}, topicIDs(path))
}

func TestFormatPath(t *testing.T) {
	path := []domain.Topic{
		domain.NewTopic("a", "Math", ""),
		domain.NewTopic("b", "Algebra", "a"),
	}

	assert.Equal(t, "Math > Algebra", FormatPath(path, ""))
	assert.Equal(t, "Math/Algebra", FormatPath(path, "/"))
	assert.Equal(t, "", FormatPath(nil, ""))
}

func TestBuildGraph(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("b", "B", "a"),
		domain.NewTopic("c", "C", "gone"),
	}

	graph := BuildGraph(topics)

	require.Len(t, graph.Nodes, 3)
	assert.Nil(t, graph.Nodes[0].ParentID)
	assert.Equal(t, []domain.TopicEdge{
		{ID: "edge-b", Source: "a", Target: "b"},
		{ID: "edge-c", Source: "gone", Target: "c"},
	}, graph.Edges)
}

func TestBuildGraph_Empty(t *testing.T) {
	graph := BuildGraph(nil)

	assert.Empty(t, graph.Nodes)
	assert.NotNil(t, graph.Edges)
}

func TestComputeLayout(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("root", "Root", ""),
		domain.NewTopic("left", "Left", "root"),
		domain.NewTopic("right", "Right", "root"),
		domain.NewTopic("second", "Second", ""),
	}
	opts := domain.LayoutOptions{SpacingX: 100, SpacingY: 50}

	got := positionsByID(ComputeLayout(topics, opts))

	assert.Equal(t, 0.0, got["left"].X)
	assert.Equal(t, 50.0, got["left"].Y)
	assert.Equal(t, 100.0, got["right"].X)
	assert.Equal(t, 50.0, got["right"].Y)
	assert.Equal(t, 50.0, got["root"].X)
	assert.Equal(t, 0.0, got["root"].Y)
	// Two leaves plus the gap column after the first tree.
	assert.Equal(t, 300.0, got["second"].X)
	assert.Equal(t, 0.0, got["second"].Y)
}

func TestComputeLayout_ParentAtMeanOfChildren(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("r", "R", ""),
		domain.NewTopic("a", "A", "r"),
		domain.NewTopic("a1", "A1", "a"),
		domain.NewTopic("a2", "A2", "a"),
		domain.NewTopic("b", "B", "r"),
	}
	opts := domain.LayoutOptions{SpacingX: 10, SpacingY: 10}

	got := positionsByID(ComputeLayout(topics, opts))

	assert.Equal(t, 0.0, got["a1"].X)
	assert.Equal(t, 10.0, got["a2"].X)
	assert.Equal(t, 5.0, got["a"].X)
	assert.Equal(t, 20.0, got["b"].X)
	assert.Equal(t, 12.5, got["r"].X)
	assert.Equal(t, 20.0, got["a1"].Y)
}

func TestComputeLayout_Deterministic(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("b", "B", "a"),
		domain.NewTopic("c", "C", "a"),
		domain.NewTopic("d", "D", "c"),
		domain.NewTopic("e", "E", ""),
		domain.NewTopic("f", "F", "missing"),
	}

	first := ComputeLayout(topics, domain.DefaultLayoutOptions())
	second := ComputeLayout(topics, domain.DefaultLayoutOptions())

	assert.Equal(t, first, second)
}

func TestComputeLayout_PlacesEveryTopicOnce(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("orphan", "Orphan", "missing"),
		domain.NewTopic("orphan-child", "Orphan child", "orphan"),
		domain.NewTopic("x", "X", "y"),
		domain.NewTopic("y", "Y", "x"),
	}

	result := ComputeLayout(topics, domain.LayoutOptions{SpacingX: 10, SpacingY: 10})

	require.Len(t, result, len(topics))
	for i, p := range result {
		assert.Equal(t, topics[i].ID, p.Topic.ID)
	}
	got := positionsByID(result)
	assert.Equal(t, 0.0, got["orphan"].Y)
	assert.Equal(t, 10.0, got["orphan-child"].Y)
	assert.Greater(t, got["orphan"].X, got["a"].X)
	assert.Greater(t, got["x"].X, got["orphan"].X)
}

func TestComputeLayout_DefaultSpacing(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("b", "B", "a"),
	}

	got := positionsByID(ComputeLayout(topics, domain.LayoutOptions{}))

	assert.Equal(t, domain.DefaultLayoutOptions().SpacingY, got["b"].Y)
}

func TestSubtree(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "A", ""),
		domain.NewTopic("b", "B", "a"),
		domain.NewTopic("c", "C", "b"),
		domain.NewTopic("d", "D", ""),
	}

	assert.Equal(t, []string{"a", "b", "c"}, topicIDs(Subtree(topics, "a")))
	assert.Equal(t, []string{"c"}, topicIDs(Subtree(topics, "c")))
	assert.Nil(t, Subtree(topics, "missing"))
}

func TestSearchTopics(t *testing.T) {
	topics := []domain.Topic{
		domain.NewTopic("a", "Straße", ""),
		domain.NewTopic("b", "Brücke", "a"),
	}

	assert.Equal(t, []string{"a", "b"}, topicIDs(SearchTopics(topics, "STRASSE", "")))
	assert.Equal(t, []string{"b"}, topicIDs(SearchTopics(topics, "brücke", "")))
	assert.Len(t, SearchTopics(topics, "", ""), 2)
	assert.Empty(t, SearchTopics(topics, "nothing", ""))
}
