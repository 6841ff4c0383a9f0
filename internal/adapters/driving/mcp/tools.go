package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// ListTopicsInput is the input schema for the list_topics tool.
type ListTopicsInput struct {
	Query string `json:"query,omitempty" jsonschema:"optional filter matched against topic names and breadcrumb paths"`
}

// ListTopicsOutput is the output schema for the list_topics tool.
type ListTopicsOutput struct {
	Topics []TopicOutput `json:"topics"`
	Count  int           `json:"count"`
}

// TopicOutput represents a single topic.
type TopicOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	Path     string `json:"path"`
}

// TopicInput identifies a topic.
type TopicInput struct {
	TopicID string `json:"topic_id" jsonschema:"the topic id"`
}

// TopicPathOutput is the output schema for the topic_path tool.
type TopicPathOutput struct {
	Path      []TopicOutput `json:"path"`
	Formatted string        `json:"formatted"`
}

// HighlightsByPDFInput is the input schema for the highlights_by_pdf tool.
type HighlightsByPDFInput struct {
	PDFID string `json:"pdf_id" jsonschema:"the document id"`
	Page  int    `json:"page,omitempty" jsonschema:"optional 1-based page number; 0 returns every page"`
}

// HighlightsOutput is the output schema for the highlight listing tools.
type HighlightsOutput struct {
	Highlights []HighlightOutput `json:"highlights"`
	Count      int               `json:"count"`
}

// HighlightOutput represents a single highlight.
type HighlightOutput struct {
	ID          string   `json:"id"`
	PDFID       string   `json:"pdf_id"`
	Page        int      `json:"page"`
	Top         float64  `json:"top"`
	Left        float64  `json:"left"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	TopicIDs    []string `json:"topic_ids"`
	Book        string   `json:"book,omitempty"`
	Volume      string   `json:"volume,omitempty"`
	Chapter     string   `json:"chapter,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// DeleteImpactOutput is the output schema for the delete_impact tool.
type DeleteImpactOutput struct {
	TopicID        string   `json:"topic_id"`
	CanDelete      bool     `json:"can_delete"`
	ChildrenCount  int      `json:"children_count"`
	KeptHighlights []string `json:"kept_highlight_ids"`
	LostHighlights []string `json:"deleted_highlight_ids"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_topics",
		Description: "List topics with their breadcrumb paths, optionally filtered",
	}, s.handleListTopics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "topic_path",
		Description: "Return the chain of topics from the root down to a topic",
	}, s.handleTopicPath)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlights_by_topic",
		Description: "List the highlights filed under a topic",
	}, s.handleHighlightsByTopic)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlights_by_pdf",
		Description: "List the highlights drawn on a document, optionally for one page",
	}, s.handleHighlightsByPDF)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_impact",
		Description: "Preview what deleting a topic would do, without changing anything",
	}, s.handleDeleteImpact)
}

func (s *Server) handleListTopics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTopicsInput,
) (*mcp.CallToolResult, ListTopicsOutput, error) {
	topics, err := s.ports.Topic.Search(ctx, input.Query)
	if err != nil {
		return nil, ListTopicsOutput{}, err
	}

	output := ListTopicsOutput{
		Topics: make([]TopicOutput, len(topics)),
		Count:  len(topics),
	}
	for i, t := range topics {
		formatted, err := s.ports.Topic.FormattedPath(ctx, t.ID)
		if err != nil {
			return nil, ListTopicsOutput{}, err
		}
		output.Topics[i] = toTopicOutput(t, formatted)
	}

	return nil, output, nil
}

func (s *Server) handleTopicPath(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TopicInput,
) (*mcp.CallToolResult, TopicPathOutput, error) {
	path, err := s.ports.Topic.Path(ctx, input.TopicID)
	if err != nil {
		return nil, TopicPathOutput{}, err
	}
	formatted, err := s.ports.Topic.FormattedPath(ctx, input.TopicID)
	if err != nil {
		return nil, TopicPathOutput{}, err
	}

	output := TopicPathOutput{
		Path:      make([]TopicOutput, len(path)),
		Formatted: formatted,
	}
	for i, t := range path {
		output.Path[i] = toTopicOutput(t, "")
	}
	return nil, output, nil
}

func (s *Server) handleHighlightsByTopic(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TopicInput,
) (*mcp.CallToolResult, HighlightsOutput, error) {
	highlights, err := s.ports.Highlight.ListByTopic(ctx, input.TopicID)
	if err != nil {
		return nil, HighlightsOutput{}, err
	}
	return nil, toHighlightsOutput(highlights), nil
}

func (s *Server) handleHighlightsByPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HighlightsByPDFInput,
) (*mcp.CallToolResult, HighlightsOutput, error) {
	var (
		highlights []domain.Highlight
		err        error
	)
	if input.Page > 0 {
		highlights, err = s.ports.Highlight.ListForPage(ctx, input.PDFID, input.Page)
	} else {
		highlights, err = s.ports.Highlight.ListByPDF(ctx, input.PDFID)
	}
	if err != nil {
		return nil, HighlightsOutput{}, err
	}
	return nil, toHighlightsOutput(highlights), nil
}

func (s *Server) handleDeleteImpact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TopicInput,
) (*mcp.CallToolResult, DeleteImpactOutput, error) {
	impact, err := s.ports.Topic.AnalyzeDeleteImpact(ctx, input.TopicID)
	if err != nil {
		return nil, DeleteImpactOutput{}, err
	}

	output := DeleteImpactOutput{
		TopicID:        impact.TopicID,
		CanDelete:      impact.CanDelete(),
		ChildrenCount:  impact.ChildrenCount,
		KeptHighlights: highlightIDs(impact.HighlightsAffectedMultiTopic),
		LostHighlights: highlightIDs(impact.HighlightsAffectedSoleTopic),
	}
	return nil, output, nil
}

func toTopicOutput(t domain.Topic, path string) TopicOutput {
	return TopicOutput{
		ID:       t.ID,
		Name:     t.Name,
		ParentID: t.Parent(),
		Path:     path,
	}
}

func toHighlightsOutput(highlights []domain.Highlight) HighlightsOutput {
	output := HighlightsOutput{
		Highlights: make([]HighlightOutput, len(highlights)),
		Count:      len(highlights),
	}
	for i := range highlights {
		h := highlights[i]
		output.Highlights[i] = HighlightOutput{
			ID:          h.ID,
			PDFID:       h.PDFID,
			Page:        h.Page,
			Top:         h.Top,
			Left:        h.Left,
			Width:       h.Width,
			Height:      h.Height,
			TopicIDs:    h.TopicIDs,
			Book:        h.Book,
			Volume:      h.Volume,
			Chapter:     h.Chapter,
			Tags:        h.Tags,
			Description: h.Description,
		}
	}
	return output
}

func highlightIDs(highlights []domain.Highlight) []string {
	ids := make([]string, len(highlights))
	for i := range highlights {
		ids[i] = highlights[i].ID
	}
	return ids
}
