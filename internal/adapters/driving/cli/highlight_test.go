package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

func TestHighlightAdd(t *testing.T) {
	store := setupTestServices(t)

	out, err := runCmd(t, "highlight", "add",
		"--pdf", "local-1", "--page", "4",
		"--top", "5", "--left", "6", "--width", "50", "--height", "20",
		"--topics", "hist, phys,hist", "--tags", "a, b", "--book", " Vol II ",
		"-d", "an equation")

	require.NoError(t, err)
	assert.Contains(t, out, "Created box-")
	assert.Contains(t, out, "on local-1 page 4")

	hs, err := store.Highlights().ListByPDF(context.Background(), "local-1")
	require.NoError(t, err)
	var created *domain.Highlight
	for i := range hs {
		if hs[i].Page == 4 {
			created = &hs[i]
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, []string{"hist", "phys"}, created.TopicIDs)
	assert.Equal(t, []string{"a", "b"}, created.Tags)
	assert.Equal(t, "Vol II", created.Book)
	assert.Equal(t, "an equation", created.Description)
}

func TestHighlightAdd_TooSmall(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "highlight", "add", "--pdf", "local-1", "--page", "1", "--width", "4", "--height", "30")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHighlightAdd_MissingPage(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "highlight", "add", "--pdf", "local-1", "--width", "40", "--height", "30")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHighlightList_ByPDF(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "highlight", "list", "--pdf", "local-1")

	require.NoError(t, err)
	assert.Contains(t, out, "box-1  local-1 p.2  [phys, hist]")
	assert.Contains(t, out, "box-2  local-1 p.1  [phys]")
	assert.Contains(t, out, "Total: 2 highlights")
}

func TestHighlightList_ByPage(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "highlight", "list", "--pdf", "local-1", "--page", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "box-2")
	assert.NotContains(t, out, "box-1")
}

func TestHighlightList_ByTopic(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "highlight", "list", "--topic", "hist")

	require.NoError(t, err)
	assert.Contains(t, out, "box-1")
	assert.NotContains(t, out, "box-2")
}

func TestHighlightList_Errors(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "highlight", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pdf or --topic is required")

	_, err = runCmd(t, "highlight", "list", "--pdf", "local-1", "--topic", "hist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestHighlightList_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "highlight", "list", "--pdf", "local-9")

	require.NoError(t, err)
	assert.Contains(t, out, "No highlights found.")
}

func TestHighlightGet(t *testing.T) {
	setupTestServices(t)

	out, err := runCmd(t, "highlight", "get", "box-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Highlight: box-1")
	assert.Contains(t, out, "Page:     2")
	assert.Contains(t, out, "top=10 left=20 width=30 height=40")
	assert.Contains(t, out, "Science > Physics (phys); History (hist)")
	assert.Contains(t, out, "Book:     Vol I")
	assert.Contains(t, out, "Tags:     exam")
}

func TestHighlightGet_DanglingTopic(t *testing.T) {
	setupTestServices(t)
	_, err := highlightService.SetTopics(context.Background(), "box-2", []string{"gone"})
	require.NoError(t, err)

	out, err := runCmd(t, "highlight", "get", "box-2")

	require.NoError(t, err)
	assert.Contains(t, out, "Topics:   gone")
}

func TestHighlightGet_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := runCmd(t, "highlight", "get", "box-9")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHighlightDelete(t *testing.T) {
	store := setupTestServices(t)

	out, err := runCmd(t, "highlight", "delete", "box-2")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted box-2")
	_, err = store.Highlights().Get(context.Background(), "box-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHighlightTopics(t *testing.T) {
	store := setupTestServices(t)

	out, err := runCmd(t, "highlight", "topics", "box-2", "hist,hist")

	require.NoError(t, err)
	assert.Contains(t, out, "Topics of box-2: History (hist)")
	h, err := store.Highlights().Get(context.Background(), "box-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"hist"}, h.TopicIDs)

	out, err = runCmd(t, "highlight", "topics", "box-2")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}
