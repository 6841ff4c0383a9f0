// Package messages defines Bubbletea message types for the TUI.
// Messages carry service results back into the Elm update loop.
package messages

import (
	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewTopics is the topic tree browser.
	ViewTopics
	// ViewHighlights lists the highlights of a topic or document.
	ViewHighlights
	// ViewImpact previews what deleting a topic would do.
	ViewImpact
	// ViewDocuments lists the documents in the library.
	ViewDocuments
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewTopics:
		return "topics"
	case ViewHighlights:
		return "highlights"
	case ViewImpact:
		return "impact"
	case ViewDocuments:
		return "documents"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// TopicsLoaded carries topics from the service. Query is the filter the
// topics were searched with, empty for the full forest.
type TopicsLoaded struct {
	Query  string
	Topics []domain.Topic
	Err    error
}

// TopicSelected is sent when a topic is chosen in the tree.
type TopicSelected struct {
	Topic domain.Topic
}

// DocumentSelected is sent when a document is chosen in the library list.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentsLoaded carries the library documents.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// HighlightsLoaded carries the highlights of one topic or one document.
// Exactly one of TopicID and PDFID is set.
type HighlightsLoaded struct {
	TopicID    string
	PDFID      string
	Title      string
	Highlights []domain.Highlight
	Err        error
}

// DeleteRequested asks for the delete impact of a topic.
type DeleteRequested struct {
	Topic domain.Topic
}

// ImpactLoaded carries a delete impact analysis.
type ImpactLoaded struct {
	Topic  domain.Topic
	Impact *domain.DeleteImpact
	Err    error
}

// TopicDeleted signals a topic delete finished.
type TopicDeleted struct {
	ID  string
	Err error
}
