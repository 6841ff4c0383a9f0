// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// Row is one visible line of the tree.
type Row struct {
	Topic domain.Topic
	Depth int
}

// Flatten orders topics depth first with siblings sorted by name.
// Topics whose parent is missing, or that sit on a parent cycle, are shown
// as extra roots so that every topic appears exactly once.
func Flatten(topics []domain.Topic) []Row {
	byID := make(map[string]bool, len(topics))
	for _, t := range topics {
		byID[t.ID] = true
	}

	children := make(map[string][]domain.Topic)
	var roots []domain.Topic
	for _, t := range topics {
		if t.IsRoot() || !byID[t.Parent()] {
			roots = append(roots, t)
			continue
		}
		children[t.Parent()] = append(children[t.Parent()], t)
	}

	byName := func(ts []domain.Topic) {
		sort.SliceStable(ts, func(i, j int) bool {
			if ts[i].Name != ts[j].Name {
				return ts[i].Name < ts[j].Name
			}
			return ts[i].ID < ts[j].ID
		})
	}

	rows := make([]Row, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	var walk func(t domain.Topic, depth int)
	walk = func(t domain.Topic, depth int) {
		if seen[t.ID] {
			return
		}
		seen[t.ID] = true
		rows = append(rows, Row{Topic: t, Depth: depth})
		kids := children[t.ID]
		byName(kids)
		for _, k := range kids {
			walk(k, depth+1)
		}
	}

	byName(roots)
	for _, r := range roots {
		walk(r, 0)
	}

	// Whatever is left only hangs off a cycle.
	var rest []domain.Topic
	for _, t := range topics {
		if !seen[t.ID] {
			rest = append(rest, t)
		}
	}
	byName(rest)
	for _, t := range rest {
		walk(t, 0)
	}
	return rows
}

// TopicTree displays topics as an indented, navigable tree.
type TopicTree struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewTopicTree creates an empty tree.
func NewTopicTree(s *styles.Styles) *TopicTree {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &TopicTree{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the tree.
func (t *TopicTree) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (t *TopicTree) Update(msg tea.Msg) (*TopicTree, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			t.MoveUp()
		case "down", "j":
			t.MoveDown()
		case "home", "g":
			t.selected = 0
		case "end", "G":
			if len(t.rows) > 0 {
				t.selected = len(t.rows) - 1
			}
		}
	}
	return t, nil
}

// View renders the visible window of rows.
func (t *TopicTree) View() string {
	if len(t.rows) == 0 {
		return t.styles.Muted.Render("No topics")
	}

	visible := t.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if t.selected >= visible {
		start = t.selected - visible + 1
	}
	end := start + visible
	if end > len(t.rows) {
		end = len(t.rows)
	}

	lines := make([]string, 0, end-start+1)
	lines = append(lines, t.styles.Muted.Render(fmt.Sprintf("%d topics", len(t.rows))))
	for i := start; i < end; i++ {
		lines = append(lines, t.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (t *TopicTree) renderRow(i int) string {
	row := t.rows[i]
	guide := t.styles.TreeGuide.Render(strings.Repeat("│ ", row.Depth))

	name := row.Topic.Name
	maxLen := t.width - 2*row.Depth - 4
	if maxLen < 8 {
		maxLen = 8
	}
	if len([]rune(name)) > maxLen {
		name = string([]rune(name)[:maxLen-3]) + "..."
	}

	if i == t.selected {
		return "> " + guide + t.styles.Selected.Render(name)
	}
	return "  " + guide + t.styles.Normal.Render(name)
}

// SetTopics replaces the tree contents with the full forest.
func (t *TopicTree) SetTopics(topics []domain.Topic) {
	t.setRows(Flatten(topics))
}

// SetFlat shows topics as a flat list in the given order, used for filter
// results where ancestors may be absent.
func (t *TopicTree) SetFlat(topics []domain.Topic) {
	rows := make([]Row, len(topics))
	for i, topic := range topics {
		rows[i] = Row{Topic: topic}
	}
	t.setRows(rows)
}

func (t *TopicTree) setRows(rows []Row) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

// Rows returns the visible rows.
func (t *TopicTree) Rows() []Row {
	return t.rows
}

// Selected returns the index of the selected row.
func (t *TopicTree) Selected() int {
	return t.selected
}

// SelectedTopic returns the selected topic, or nil when the tree is empty.
func (t *TopicTree) SelectedTopic() *domain.Topic {
	if len(t.rows) == 0 {
		return nil
	}
	topic := t.rows[t.selected].Topic
	return &topic
}

// MoveUp moves selection up.
func (t *TopicTree) MoveUp() {
	if t.selected > 0 {
		t.selected--
	}
}

// MoveDown moves selection down.
func (t *TopicTree) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
	}
}

// SetDimensions sets the component dimensions.
func (t *TopicTree) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}

// Count returns the number of rows.
func (t *TopicTree) Count() int {
	return len(t.rows)
}
