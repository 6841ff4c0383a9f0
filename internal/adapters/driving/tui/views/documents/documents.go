// Package documents provides the library document list for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// View lists the documents known to the library.
type View struct {
	styles         *styles.Styles
	libraryService driving.LibraryService

	documents []domain.Document
	lastID    string
	selected  int

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new documents view. A nil library service renders a
// notice instead of the list.
func NewView(s *styles.Styles, libraryService driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:         s,
		libraryService: libraryService,
	}
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDocuments()
}

func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("library service not available")}
		}
		docs, err := v.libraryService.List(context.Background())
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.documents = msg.Documents
		if v.selected >= len(v.documents) {
			v.selected = 0
		}
		if v.libraryService != nil {
			// The marker is cosmetic; a failed lookup just hides it.
			v.lastID, _ = v.libraryService.GetLastOpened(context.Background())
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
		}
	case "enter":
		if len(v.documents) > 0 {
			doc := v.documents[v.selected]
			return v, func() tea.Msg { return messages.DocumentSelected{Document: doc} }
		}
	case "r":
		v.loading = true
		return v, v.loadDocuments()
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Documents"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents. Open a PDF or watch a folder to add some."))
	default:
		for i := range v.documents {
			b.WriteString(v.renderDocument(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] highlights  [r] reload  [esc] back  [q] quit"))
	return b.String()
}

// renderDocument marks the last opened document with an asterisk.
func (v *View) renderDocument(i int) string {
	doc := v.documents[i]

	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}
	marker := "  "
	if doc.ID == v.lastID {
		marker = "* "
	}

	name := doc.DecodedPath()
	if doc.Title != "" {
		name = fmt.Sprintf("%s  (%s)", doc.Title, doc.DecodedPath())
	}
	maxLen := v.width - 6
	if maxLen < 20 {
		maxLen = 20
	}
	if runes := []rune(name); len(runes) > maxLen {
		name = string(runes[:maxLen-3]) + "..."
	}

	if i == v.selected {
		return v.styles.Selected.Render(indicator + marker + name)
	}
	return v.styles.Normal.Render(indicator) + v.styles.Subtitle.Render(marker) + v.styles.Normal.Render(name)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the loaded documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// LastOpenedID returns the id of the last opened document, if known.
func (v *View) LastOpenedID() string {
	return v.lastID
}

// SelectedIndex returns the selected index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
