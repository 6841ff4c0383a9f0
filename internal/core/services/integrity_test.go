package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

func TestIntegrityService_Audit_Clean(t *testing.T) {
	store := memory.NewStore()
	seedLibrary(t, store)

	report, err := NewIntegrityService(store).Audit(context.Background())

	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 2, report.Highlights)
	assert.Equal(t, 2, report.Topics)
	assert.Equal(t, 1, report.Bookmarks)
}

func TestIntegrityService_Audit_FindsGaps(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Documents().Save(ctx, domain.Document{ID: "doc", Path: "/doc.pdf"}))
	require.NoError(t, store.Topics().Save(ctx, domain.NewTopic("orphan", "Orphan", "gone")))
	require.NoError(t, store.Topics().Save(ctx, domain.NewTopic("x", "X", "y")))
	require.NoError(t, store.Topics().Save(ctx, domain.NewTopic("y", "Y", "x")))
	require.NoError(t, store.Highlights().Save(ctx, domain.Highlight{ID: "h", PDFID: "nodoc", TopicIDs: []string{"x", "missing"}}))
	require.NoError(t, store.Bookmarks().Save(ctx, domain.Bookmark{ID: "b", PDFID: "nodoc", Page: 1}))
	require.NoError(t, store.Meta().Set(ctx, driven.MetaKeyLastPDF, "nodoc"))

	report, err := NewIntegrityService(store).Audit(ctx)

	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.ElementsMatch(t, []domain.ReferentialGap{
		{Kind: domain.GapHighlightDocument, RecordID: "h", MissingID: "nodoc"},
		{Kind: domain.GapHighlightTopic, RecordID: "h", MissingID: "missing"},
		{Kind: domain.GapTopicParent, RecordID: "orphan", MissingID: "gone"},
		{Kind: domain.GapTopicCycle, RecordID: "x"},
		{Kind: domain.GapTopicCycle, RecordID: "y"},
		{Kind: domain.GapBookmarkDocument, RecordID: "b", MissingID: "nodoc"},
		{Kind: domain.GapLastOpened, MissingID: "nodoc"},
	}, report.Gaps)
}

func TestIntegrityService_Audit_DoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Meta().Set(ctx, driven.MetaKeyLastPDF, "nodoc"))

	_, err := NewIntegrityService(store).Audit(ctx)
	require.NoError(t, err)

	last, ok, err := store.Meta().Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "nodoc", last)
}
