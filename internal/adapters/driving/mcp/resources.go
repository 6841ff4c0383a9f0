package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for pdfindex resources.
	uriScheme = "pdfindex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the topic graph.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "topics",
		Name:        "topics",
		Description: "The topic forest as graph nodes and parent-to-child edges",
		MIMEType:    "application/json",
	}, s.handleTopicsResource)

	// Static resource for registered documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all registered PDF documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a topic's highlights.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "topics/{topicId}/highlights",
		Name:        "topic-highlights",
		Description: "Highlights filed under a specific topic",
		MIMEType:    "application/json",
	}, s.handleTopicHighlightsResource)
}

// handleTopicsResource returns the topic graph.
func (s *Server) handleTopicsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	graph, err := s.ports.Topic.Graph(ctx)
	if err != nil {
		return nil, fmt.Errorf("building topic graph: %w", err)
	}
	return jsonResource(req.Params.URI, graph)
}

// handleDocumentsResource returns the registered documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Library == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	type docInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Path  string `json:"path"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:    docs[i].ID,
			Title: docs[i].Title,
			Path:  docs[i].DecodedPath(),
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleTopicHighlightsResource returns the highlights of one topic.
func (s *Server) handleTopicHighlightsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract topicId from URI: pdfindex://topics/{topicId}/highlights
	topicID := extractTopicID(req.Params.URI)
	if topicID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	highlights, err := s.ports.Highlight.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("listing highlights: %w", err)
	}
	return jsonResource(req.Params.URI, toHighlightsOutput(highlights).Highlights)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTopicID extracts the topic ID from a URI like pdfindex://topics/{topicId}/highlights.
func extractTopicID(uri string) string {
	const prefix = uriScheme + "topics/"
	const suffix = "/highlights"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
