package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

func TestExtractTopicID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid topic highlights URI",
			uri:      "pdfindex://topics/t-123/highlights",
			expected: "t-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://topics/t-123/highlights",
			expected: "",
		},
		{
			name:     "missing highlights suffix",
			uri:      "pdfindex://topics/t-123",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractTopicID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestServer_handleTopicsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the topic graph", func(t *testing.T) {
		server, _ := newTestServer(t)

		result, err := server.handleTopicsResource(ctx, makeReadResourceRequest("pdfindex://topics"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		var graph domain.TopicGraph
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &graph))
		assert.Len(t, graph.Nodes, 3)
		assert.Equal(t, []domain.TopicEdge{{ID: "edge-a", Source: "m", Target: "a"}}, graph.Edges)
	})

	t.Run("returns error when storage is unavailable", func(t *testing.T) {
		server, store := newTestServer(t)
		require.NoError(t, store.Close())

		_, err := server.handleTopicsResource(ctx, makeReadResourceRequest("pdfindex://topics"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "building topic graph")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil library service returns empty list", func(t *testing.T) {
		ports, _ := newTestPorts(t)
		ports.Library = nil
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("pdfindex://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents with decoded paths", func(t *testing.T) {
		server, _ := newTestServer(t)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("pdfindex://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "Lectures")
		assert.Contains(t, result.Contents[0].Text, "/lectures 1.pdf")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, store := newTestServer(t)
		require.NoError(t, store.Close())

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("pdfindex://documents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleTopicHighlightsResource(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)

	t.Run("invalid URI returns not found", func(t *testing.T) {
		_, err := server.handleTopicHighlightsResource(ctx, makeReadResourceRequest("pdfindex://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("returns highlights", func(t *testing.T) {
		result, err := server.handleTopicHighlightsResource(ctx, makeReadResourceRequest("pdfindex://topics/a/highlights"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "hl-1")
		assert.Contains(t, result.Contents[0].Text, "hl-2")
	})
}
