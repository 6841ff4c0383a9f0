package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

// newTestPorts returns ports backed by a memory store holding:
//
//	math (m) > algebra (a)
//	history (h)
//
// with highlight hl-1 on page 1 of doc-1 filed under algebra and history,
// and hl-2 on page 2 filed under algebra only.
func newTestPorts(t *testing.T) (*Ports, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	topics := services.NewTopicService(store)
	_, err := topics.Add(ctx, "m", "Math", "")
	require.NoError(t, err)
	_, err = topics.Add(ctx, "a", "Algebra", "m")
	require.NoError(t, err)
	_, err = topics.Add(ctx, "h", "History", "")
	require.NoError(t, err)

	library := services.NewLibraryService(store, nil)
	require.NoError(t, library.Add(ctx, domain.Document{ID: "doc-1", Title: "Lectures", Path: "/lectures%201.pdf"}))

	highlights := services.NewHighlightService(store)
	require.NoError(t, highlights.Add(ctx, domain.Highlight{
		ID: "hl-1", PDFID: "doc-1", Page: 1, Width: 10, Height: 10, TopicIDs: []string{"a", "h"}, Book: "Vol I",
	}))
	require.NoError(t, highlights.Add(ctx, domain.Highlight{
		ID: "hl-2", PDFID: "doc-1", Page: 2, Width: 10, Height: 10, TopicIDs: []string{"a"},
	}))

	return &Ports{Topic: topics, Highlight: highlights, Library: library}, store
}

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	ports, store := newTestPorts(t)
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, store
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
