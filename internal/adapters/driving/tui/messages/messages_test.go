package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		name     string
		view     ViewType
		expected string
	}{
		{"ViewMenu", ViewMenu, "menu"},
		{"ViewTopics", ViewTopics, "topics"},
		{"ViewHighlights", ViewHighlights, "highlights"},
		{"ViewImpact", ViewImpact, "impact"},
		{"ViewDocuments", ViewDocuments, "documents"},
		{"ViewHelp", ViewHelp, "help"},
		{"UnknownView", ViewType(99), "unknown"},
		{"NegativeView", ViewType(-1), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestTopicsLoaded(t *testing.T) {
	t.Run("full forest", func(t *testing.T) {
		msg := TopicsLoaded{Topics: []domain.Topic{domain.NewTopic("a", "Algebra", "")}}

		assert.Empty(t, msg.Query)
		require.Len(t, msg.Topics, 1)
		assert.True(t, msg.Topics[0].IsRoot())
	})

	t.Run("with error", func(t *testing.T) {
		msg := TopicsLoaded{Query: "alg", Err: errors.New("store closed")}

		assert.Equal(t, "alg", msg.Query)
		assert.Nil(t, msg.Topics)
		assert.EqualError(t, msg.Err, "store closed")
	})
}

func TestHighlightsLoaded_Scope(t *testing.T) {
	byTopic := HighlightsLoaded{TopicID: "t1", Title: "Algebra"}
	byPDF := HighlightsLoaded{PDFID: "local-1", Title: "/a.pdf"}

	assert.NotEmpty(t, byTopic.TopicID)
	assert.Empty(t, byTopic.PDFID)
	assert.NotEmpty(t, byPDF.PDFID)
	assert.Empty(t, byPDF.TopicID)
}

func TestImpactLoaded(t *testing.T) {
	impact := &domain.DeleteImpact{TopicID: "t1", HasChildren: true, ChildrenCount: 2}
	msg := ImpactLoaded{Topic: domain.NewTopic("t1", "Math", ""), Impact: impact}

	require.NotNil(t, msg.Impact)
	assert.False(t, msg.Impact.CanDelete())
	assert.Equal(t, "t1", msg.Topic.ID)
}

func TestErrorOccurred_Wrapped(t *testing.T) {
	base := errors.New("base error")
	msg := ErrorOccurred{Err: errors.Join(base, errors.New("more"))}

	assert.ErrorIs(t, msg.Err, base)
}
