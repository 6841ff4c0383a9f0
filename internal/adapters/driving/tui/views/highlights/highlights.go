// Package highlights provides the highlight list view for the TUI.
package highlights

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// View lists the highlights filed under one topic or drawn on one document.
type View struct {
	styles           *styles.Styles
	topicService     driving.TopicService
	highlightService driving.HighlightService

	title      string
	highlights []domain.Highlight
	selected   int
	back       messages.ViewType
	scroll     int

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new highlights view.
func NewView(s *styles.Styles, topicService driving.TopicService, highlightService driving.HighlightService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:           s,
		topicService:     topicService,
		highlightService: highlightService,
		back:             messages.ViewTopics,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// ShowTopic loads the highlights of a topic. The title is the topic's
// breadcrumb path.
func (v *View) ShowTopic(topic domain.Topic) tea.Cmd {
	v.reset(topic.Name, messages.ViewTopics)
	return func() tea.Msg {
		if v.highlightService == nil {
			return messages.HighlightsLoaded{TopicID: topic.ID, Err: fmt.Errorf("highlight service not available")}
		}
		ctx := context.Background()
		title := topic.Name
		if v.topicService != nil {
			if path, err := v.topicService.FormattedPath(ctx, topic.ID); err == nil && path != "" {
				title = path
			}
		}
		hs, err := v.highlightService.ListByTopic(ctx, topic.ID)
		return messages.HighlightsLoaded{TopicID: topic.ID, Title: title, Highlights: hs, Err: err}
	}
}

// ShowDocument loads the highlights of a document in page order.
func (v *View) ShowDocument(doc domain.Document) tea.Cmd {
	title := doc.Title
	if title == "" {
		title = doc.DecodedPath()
	}
	v.reset(title, messages.ViewDocuments)
	return func() tea.Msg {
		if v.highlightService == nil {
			return messages.HighlightsLoaded{PDFID: doc.ID, Err: fmt.Errorf("highlight service not available")}
		}
		hs, err := v.highlightService.ListByPDF(context.Background(), doc.ID)
		sort.SliceStable(hs, func(i, j int) bool {
			if hs[i].Page != hs[j].Page {
				return hs[i].Page < hs[j].Page
			}
			return hs[i].CreatedAt < hs[j].CreatedAt
		})
		return messages.HighlightsLoaded{PDFID: doc.ID, Title: title, Highlights: hs, Err: err}
	}
}

func (v *View) reset(title string, back messages.ViewType) {
	v.title = title
	v.back = back
	v.highlights = nil
	v.selected = 0
	v.scroll = 0
	v.err = nil
	v.loading = true
}

// Update handles messages for the highlights view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HighlightsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.highlights = msg.Highlights
		if msg.Title != "" {
			v.title = msg.Title
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
		if v.selected < v.scroll {
			v.scroll = v.selected
		}
	case "down", "j":
		if v.selected < len(v.highlights)-1 {
			v.selected++
		}
		if visible := v.visibleCount(); v.selected >= v.scroll+visible {
			v.scroll = v.selected - visible + 1
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg { return messages.ViewChanged{View: back} }
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

// Each highlight takes two lines.
func (v *View) visibleCount() int {
	n := (v.height - 6) / 2
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the highlight list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Highlights"))
	b.WriteString("\n")
	b.WriteString(v.styles.Breadcrumb.Render(v.title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading highlights..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.highlights) == 0:
		b.WriteString(v.styles.Muted.Render("No highlights."))
	default:
		end := v.scroll + v.visibleCount()
		if end > len(v.highlights) {
			end = len(v.highlights)
		}
		for i := v.scroll; i < end; i++ {
			b.WriteString(v.renderHighlight(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [esc] back  [q] quit"))
	return b.String()
}

func (v *View) renderHighlight(i int) string {
	h := v.highlights[i]

	indicator := "  "
	if i == v.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("p.%d  %s", h.Page, h.ID)
	var line string
	if i == v.selected {
		line = v.styles.Selected.Render(indicator + head)
	} else {
		line = v.styles.Normal.Render(indicator + head)
	}
	for _, tag := range h.Tags {
		line += " " + v.styles.Tag.Render(tag)
	}

	detail := provenance(h)
	if h.Description != "" {
		if detail != "" {
			detail += ": "
		}
		detail += h.Description
	}
	maxLen := v.width - 6
	if maxLen < 20 {
		maxLen = 20
	}
	if runes := []rune(detail); len(runes) > maxLen {
		detail = string(runes[:maxLen-3]) + "..."
	}
	return line + "\n" + v.styles.Muted.Render("    "+detail)
}

// provenance joins the non-empty book, volume and chapter fields.
func provenance(h domain.Highlight) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{h.Book, h.Volume, h.Chapter} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Highlights returns the loaded highlights.
func (v *View) Highlights() []domain.Highlight {
	return v.highlights
}

// Title returns the list heading.
func (v *View) Title() string {
	return v.title
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
