// Package mcp provides an MCP (Model Context Protocol) server adapter for pdfindex.
// It lets AI assistants browse the topic forest and the highlights filed under it.
package mcp

import "errors"

// ErrMissingTopicService is returned when the topic service is not provided.
var ErrMissingTopicService = errors.New("mcp: topic service is required")

// ErrMissingHighlightService is returned when the highlight service is not provided.
var ErrMissingHighlightService = errors.New("mcp: highlight service is required")
