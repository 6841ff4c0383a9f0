// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
)

const minInputWidth = 20

// FilterInput is the single-line topic filter shown above the tree.
// It starts blurred so list navigation keys reach the tree.
type FilterInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewFilterInput creates a filter input with the given label.
func NewFilterInput(s *styles.Styles, label string) *FilterInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter topics"
	ti.CharLimit = 128
	ti.Width = 40

	return &FilterInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
}

// Init initialises the input.
func (f *FilterInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input. Unfocused inputs ignore keys.
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *FilterInput) View() string {
	label := f.styles.Subtitle.Render(f.label + ": ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the library constant
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current filter text.
func (f *FilterInput) Value() string {
	return f.textinput.Value()
}

// SetValue replaces the filter text.
func (f *FilterInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus gives the input keyboard focus.
func (f *FilterInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes keyboard focus.
func (f *FilterInput) Blur() {
	f.textinput.Blur()
}

// Focused reports whether the input has keyboard focus.
func (f *FilterInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the total width, label included.
func (f *FilterInput) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 8
	if inputWidth < minInputWidth {
		inputWidth = minInputWidth
	}
	f.textinput.Width = inputWidth
}

// Width returns the total width.
func (f *FilterInput) Width() int {
	return f.width
}

// Reset clears the filter text.
func (f *FilterInput) Reset() {
	f.textinput.Reset()
}
