// Package topics provides the topic tree browser view for the TUI.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

// View browses the topic forest. Typing into the filter narrows the tree
// to topics whose name or full path matches.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	topicService driving.TopicService

	filter *input.FilterInput
	tree   *list.TopicTree
	status *status.Bar

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new topics view.
func NewView(s *styles.Styles, topicService driving.TopicService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:       s,
		keymap:       km,
		topicService: topicService,
		filter:       input.NewFilterInput(s, "Filter"),
		tree:         list.NewTopicTree(s),
		status:       status.NewBar(s, km),
	}
}

// Init loads the topic forest.
func (v *View) Init() tea.Cmd {
	v.status.SetState(status.StateLoading)
	return v.load(v.filter.Value())
}

// load returns a command fetching topics for the given filter.
func (v *View) load(query string) tea.Cmd {
	return func() tea.Msg {
		if v.topicService == nil {
			return messages.TopicsLoaded{Query: query, Err: fmt.Errorf("topic service not available")}
		}
		ctx := context.Background()
		if strings.TrimSpace(query) == "" {
			topics, err := v.topicService.List(ctx)
			return messages.TopicsLoaded{Query: query, Topics: topics, Err: err}
		}
		topics, err := v.topicService.Search(ctx, query)
		return messages.TopicsLoaded{Query: query, Topics: topics, Err: err}
	}
}

// Update handles messages for the topics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.TopicsLoaded:
		// Drop results for a filter the user has since changed.
		if msg.Query != v.filter.Value() {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.err = nil
		if strings.TrimSpace(msg.Query) == "" {
			v.tree.SetTopics(msg.Topics)
			v.status.SetState(status.StateReady)
		} else {
			v.tree.SetFlat(msg.Topics)
			v.status.SetState(status.StateFiltering)
		}
		v.status.SetCount(v.tree.Count(), "topics")
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.status.SetError(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.filter.Blur()
		v.filter.Reset()
		return v, v.load("")
	case "enter":
		v.filter.Blur()
		return v, nil
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if v.filter.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.load(v.filter.Value()))
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Filter):
		return v, v.filter.Focus()

	case keymap.Matches(keyStr, v.keymap.Select):
		if topic := v.tree.SelectedTopic(); topic != nil {
			selected := *topic
			return v, func() tea.Msg { return messages.TopicSelected{Topic: selected} }
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Delete):
		if topic := v.tree.SelectedTopic(); topic != nil {
			selected := *topic
			return v, func() tea.Msg { return messages.DeleteRequested{Topic: selected} }
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Refresh):
		v.status.SetState(status.StateLoading)
		return v, v.load(v.filter.Value())

	case keymap.Matches(keyStr, v.keymap.Back):
		if v.filter.Value() != "" {
			v.filter.Reset()
			return v, v.load("")
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keyStr == "q":
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.tree, cmd = v.tree.Update(msg)
	return v, cmd
}

// View renders the filter, the tree and the status bar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Topics"))
	b.WriteString("\n\n")
	b.WriteString(v.filter.View())
	b.WriteString("\n\n")
	b.WriteString(v.tree.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderHelp() string {
	hints := make([]string, 0, 4)
	for _, binding := range v.keymap.TopicsHelp() {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.filter.SetWidth(width)
	v.status.SetWidth(width)
	// Title, filter box, help and status take ten lines.
	v.tree.SetDimensions(width, height-10)
}

// Filter returns the current filter text.
func (v *View) Filter() string {
	return v.filter.Value()
}

// FilterFocused reports whether keys go to the filter input.
func (v *View) FilterFocused() bool {
	return v.filter.Focused()
}

// Tree returns the tree component.
func (v *View) Tree() *list.TopicTree {
	return v.tree
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
