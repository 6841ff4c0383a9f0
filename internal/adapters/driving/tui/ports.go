// Package tui provides an interactive terminal browser for topics and
// highlights. It is a driving adapter over the core services.
package tui

import (
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Topic browses, filters and deletes topics.
	Topic driving.TopicService

	// Highlight lists highlights per topic or document.
	Highlight driving.HighlightService

	// Library lists documents. Optional; the documents view shows a notice
	// when it is nil.
	Library driving.LibraryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	topic driving.TopicService,
	highlight driving.HighlightService,
	library driving.LibraryService,
) *Ports {
	return &Ports{
		Topic:     topic,
		Highlight: highlight,
		Library:   library,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Topic == nil {
		return ErrMissingTopicService
	}
	if p.Highlight == nil {
		return ErrMissingHighlightService
	}
	return nil
}
