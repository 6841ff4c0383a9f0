package documents

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

func newTestView(t *testing.T) (*View, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	library := services.NewLibraryService(store, nil)

	require.NoError(t, library.Add(ctx, domain.Document{ID: "local-1", Title: "Lectures", Path: "/lectures%201.pdf"}))
	require.NoError(t, library.Add(ctx, domain.Document{ID: "local-2", Path: "/notes.pdf"}))
	require.NoError(t, library.SetLastOpened(ctx, "local-2"))

	v := NewView(nil, library)
	v.SetDimensions(100, 30)
	return v, store
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Empty(t, v.Documents())
}

func TestView_Init(t *testing.T) {
	v, _ := newTestView(t)

	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading documents...")
	v.Update(cmd())

	require.Len(t, v.Documents(), 2)
	assert.Equal(t, "local-2", v.LastOpenedID())

	view := v.View()
	assert.Contains(t, view, "Lectures  (/lectures 1.pdf)")
	assert.Contains(t, view, "* /notes.pdf")
}

func TestView_Init_NilService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "library service not available")
}

func TestView_Init_StoreError(t *testing.T) {
	v, store := newTestView(t)
	require.NoError(t, store.Close())

	v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), domain.ErrStorageUnavailable)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, services.NewLibraryService(memory.NewStore(), nil))

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "No documents.")
}

func TestView_SelectDocument(t *testing.T) {
	v, _ := newTestView(t)
	v.Update(v.Init()())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "local-2", msg.Document.ID)
}

func TestView_Enter_Empty(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_Back(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reload(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)

	_, ok := cmd().(messages.DocumentsLoaded)
	assert.True(t, ok)
}

func TestView_ErrorOccurred(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
}
