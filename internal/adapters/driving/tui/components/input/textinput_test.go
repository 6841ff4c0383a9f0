package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/styles"
)

func TestNewFilterInput(t *testing.T) {
	in := NewFilterInput(styles.DefaultStyles(), "Filter")

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.False(t, in.Focused())
}

func TestNewFilterInput_NilStyles(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestFilterInput_Init(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	assert.NotNil(t, in.Init())
}

func TestFilterInput_Update_Focused(t *testing.T) {
	in := NewFilterInput(nil, "Filter")
	in.Focus()

	updated, _ := in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, in, updated)
	assert.Equal(t, "a", in.Value())
}

func TestFilterInput_Update_BlurredIgnoresKeys(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, "", in.Value())
}

func TestFilterInput_View(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	assert.Contains(t, in.View(), "Filter")
}

func TestFilterInput_SetValueAndReset(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	in.SetValue("optics")
	assert.Equal(t, "optics", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestFilterInput_FocusBlur(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	in.Focus()
	assert.True(t, in.Focused())

	in.Blur()
	assert.False(t, in.Focused())
}

func TestFilterInput_SetWidth(t *testing.T) {
	in := NewFilterInput(nil, "Filter")

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 86, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, minInputWidth, in.textinput.Width)
}
