package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil topic service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingTopicService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _ := newTestPorts(t)
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	store := memory.NewStore()

	t.Run("nil topic service returns error", func(t *testing.T) {
		err := (&Ports{}).Validate()
		assert.ErrorIs(t, err, ErrMissingTopicService)
	})

	t.Run("nil highlight service returns error", func(t *testing.T) {
		err := (&Ports{Topic: services.NewTopicService(store)}).Validate()
		assert.ErrorIs(t, err, ErrMissingHighlightService)
	})

	t.Run("library is optional", func(t *testing.T) {
		ports := &Ports{
			Topic:     services.NewTopicService(store),
			Highlight: services.NewHighlightService(store),
		}
		assert.NoError(t, ports.Validate())
	})
}

// connectClient links a client session to the server over in-memory
// transports.
func connectClient(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServer_Session(t *testing.T) {
	server, _ := newTestServer(t)
	session := connectClient(t, server)
	ctx := context.Background()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_topics", "topic_path", "highlights_by_topic", "highlights_by_pdf", "delete_impact",
	}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "topic_path",
		Arguments: map[string]any{"topic_id": "a"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uriScheme + "documents"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "doc-1")
}
