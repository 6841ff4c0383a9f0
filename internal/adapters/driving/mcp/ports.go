package mcp

import (
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Topic navigates the topic forest.
	Topic driving.TopicService

	// Highlight reads highlights by topic and by document.
	Highlight driving.HighlightService

	// Library lists registered documents.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Topic == nil {
		return ErrMissingTopicService
	}
	if p.Highlight == nil {
		return ErrMissingHighlightService
	}
	// Library is optional; the documents resource is empty without it.
	return nil
}
