// Package impact provides the topic delete preview for the TUI.
package impact

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

// maxListed caps how many highlight ids are printed per group.
const maxListed = 8

// View shows what deleting a topic would do and asks for confirmation.
type View struct {
	styles       *styles.Styles
	topicService driving.TopicService

	topic    domain.Topic
	impact   *domain.DeleteImpact
	deleting bool

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new impact view.
func NewView(s *styles.Styles, topicService driving.TopicService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		topicService: topicService,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Analyze loads the delete impact of a topic.
func (v *View) Analyze(topic domain.Topic) tea.Cmd {
	v.topic = topic
	v.impact = nil
	v.err = nil
	v.deleting = false
	v.loading = true
	return func() tea.Msg {
		if v.topicService == nil {
			return messages.ImpactLoaded{Topic: topic, Err: fmt.Errorf("topic service not available")}
		}
		impact, err := v.topicService.AnalyzeDeleteImpact(context.Background(), topic.ID)
		return messages.ImpactLoaded{Topic: topic, Impact: impact, Err: err}
	}
}

func (v *View) deleteTopic() tea.Cmd {
	id := v.topic.ID
	return func() tea.Msg {
		if v.topicService == nil {
			return messages.TopicDeleted{ID: id, Err: fmt.Errorf("topic service not available")}
		}
		return messages.TopicDeleted{ID: id, Err: v.topicService.Delete(context.Background(), id)}
	}
}

// Update handles messages for the impact view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ImpactLoaded:
		if msg.Topic.ID != v.topic.ID {
			return v, nil
		}
		v.loading = false
		v.impact = msg.Impact
		v.err = msg.Err
		return v, nil

	case messages.TopicDeleted:
		v.deleting = false
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y":
		if v.CanConfirm() {
			v.deleting = true
			return v, v.deleteTopic()
		}
	case "esc", "n":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewTopics} }
	}
	return v, nil
}

// CanConfirm reports whether a delete may be started now.
func (v *View) CanConfirm() bool {
	return !v.loading && !v.deleting && v.err == nil && v.impact != nil && v.impact.CanDelete()
}

// View renders the impact summary.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Delete topic"))
	b.WriteString("\n")
	b.WriteString(v.styles.Breadcrumb.Render(v.topic.Name))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Analysing..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.impact == nil:
		b.WriteString(v.styles.Muted.Render("Nothing to show."))
	case v.impact.HasChildren:
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf(
			"Blocked: this topic has %d child topic(s). Move or delete them first.",
			v.impact.ChildrenCount)))
	default:
		v.renderGroups(&b)
	}

	b.WriteString("\n\n")
	if v.CanConfirm() {
		b.WriteString(v.styles.Help.Render("[y] delete  [n/esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[esc] back"))
	}
	return b.String()
}

func (v *View) renderGroups(b *strings.Builder) {
	sole := v.impact.HighlightsAffectedSoleTopic
	multi := v.impact.HighlightsAffectedMultiTopic

	if len(sole) == 0 && len(multi) == 0 {
		b.WriteString(v.styles.Normal.Render("No highlights are filed under this topic."))
		return
	}

	b.WriteString(v.styles.Error.Render(fmt.Sprintf("%d highlight(s) will be deleted", len(sole))))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(listIDs(sole)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Success.Render(fmt.Sprintf("%d highlight(s) keep their other topics", len(multi))))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(listIDs(multi)))
}

// listIDs prints up to maxListed ids and a count of the rest.
func listIDs(hs []domain.Highlight) string {
	ids := make([]string, 0, maxListed)
	for i, h := range hs {
		if i == maxListed {
			break
		}
		ids = append(ids, fmt.Sprintf("  %s (p.%d)", h.ID, h.Page))
	}
	if rest := len(hs) - maxListed; rest > 0 {
		ids = append(ids, fmt.Sprintf("  and %d more", rest))
	}
	return strings.Join(ids, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Impact returns the loaded analysis.
func (v *View) Impact() *domain.DeleteImpact {
	return v.impact
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
