// Package storagetest holds the behaviour every driven.Storage backend must
// share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// Factory opens a fresh, empty store. The store is closed by the suite.
type Factory func(t *testing.T) driven.Storage

var errRollback = errors.New("rollback")

// Run executes the shared storage tests against stores produced by open.
func Run(t *testing.T, open Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s driven.Storage)
	}{
		{"DocumentsCRUD", testDocumentsCRUD},
		{"HighlightsRoundTrip", testHighlightsRoundTrip},
		{"HighlightIndexes", testHighlightIndexes},
		{"HighlightIndexFollowsUpdates", testHighlightIndexFollowsUpdates},
		{"TopicsCRUD", testTopicsCRUD},
		{"BookmarksByPDF", testBookmarksByPDF},
		{"Meta", testMeta},
		{"ClearPartitions", testClearPartitions},
		{"TxCommit", testTxCommit},
		{"TxRollback", testTxRollback},
		{"TxNested", testTxNested},
		{"SchemaVersion", testSchemaVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			tt.fn(t, s)
		})
	}
}

func testDocumentsCRUD(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	docs := s.Documents()

	_, err := docs.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, docs.Save(ctx, domain.Document{ID: "b", Title: "Beta", Path: "/b.pdf"}))
	require.NoError(t, docs.Save(ctx, domain.Document{ID: "a", Title: "Alpha", Path: "/a.pdf"}))
	require.NoError(t, docs.Save(ctx, domain.Document{ID: "a", Title: "Alpha 2", Path: "/a2.pdf"}))

	got, err := docs.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Document{ID: "a", Title: "Alpha 2", Path: "/a2.pdf"}, *got)

	list, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	require.NoError(t, docs.Delete(ctx, "a"))
	require.NoError(t, docs.Delete(ctx, "a"))
	_, err = docs.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func sampleHighlight(id, pdfID string, topics ...string) domain.Highlight {
	if topics == nil {
		topics = []string{}
	}
	return domain.Highlight{
		ID:          id,
		PDFID:       pdfID,
		Page:        2,
		Top:         10.5,
		Left:        20,
		Width:       100,
		Height:      40.25,
		TopicIDs:    topics,
		Book:        "Principia",
		Chapter:     "III",
		Tags:        []string{"gravity", "orbits"},
		Description: "inverse square",
		CreatedAt:   1700000000123,
	}
}

func testHighlightsRoundTrip(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	hs := s.Highlights()

	h := sampleHighlight("h1", "pdf-1", "t2", "t1")
	require.NoError(t, hs.Save(ctx, h))

	got, err := hs.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, h, *got)

	bare := domain.Highlight{ID: "h2", PDFID: "pdf-1", Page: 1, Width: 5, Height: 5, TopicIDs: []string{}}
	require.NoError(t, hs.Save(ctx, bare))
	got, err = hs.Get(ctx, "h2")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.TopicIDs)
	assert.Empty(t, got.Tags)

	_, err = hs.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func highlightID(h domain.Highlight) string { return h.ID }

func testHighlightIndexes(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	hs := s.Highlights()

	require.NoError(t, hs.Save(ctx, sampleHighlight("h1", "pdf-1", "t1")))
	require.NoError(t, hs.Save(ctx, sampleHighlight("h2", "pdf-1", "t1", "t2")))
	require.NoError(t, hs.Save(ctx, sampleHighlight("h3", "pdf-2", "t2")))
	require.NoError(t, hs.Save(ctx, sampleHighlight("h4", "pdf-2")))

	byPDF, err := hs.ListByPDF(ctx, "pdf-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"h1", "h2"}, ids(byPDF, highlightID))

	byTopic, err := hs.ListByTopic(ctx, "t2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"h2", "h3"}, ids(byTopic, highlightID))

	none, err := hs.ListByTopic(ctx, "t9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := hs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func testHighlightIndexFollowsUpdates(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	hs := s.Highlights()

	require.NoError(t, hs.Save(ctx, sampleHighlight("h1", "pdf-1", "t1", "t2")))

	moved := sampleHighlight("h1", "pdf-2", "t3")
	require.NoError(t, hs.Save(ctx, moved))

	old, err := hs.ListByPDF(ctx, "pdf-1")
	require.NoError(t, err)
	assert.Empty(t, old)

	oldTopic, err := hs.ListByTopic(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, oldTopic)

	newTopic, err := hs.ListByTopic(ctx, "t3")
	require.NoError(t, err)
	assert.Equal(t, []string{"h1"}, ids(newTopic, highlightID))

	require.NoError(t, hs.Delete(ctx, "h1"))
	afterDelete, err := hs.ListByTopic(ctx, "t3")
	require.NoError(t, err)
	assert.Empty(t, afterDelete)
	byPDF, err := hs.ListByPDF(ctx, "pdf-2")
	require.NoError(t, err)
	assert.Empty(t, byPDF)
}

func testTopicsCRUD(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	ts := s.Topics()

	require.NoError(t, ts.Save(ctx, domain.NewTopic("root", "Science", "")))
	require.NoError(t, ts.Save(ctx, domain.NewTopic("child", "Physics", "root")))

	root, err := ts.Get(ctx, "root")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	child, err := ts.Get(ctx, "child")
	require.NoError(t, err)
	assert.Equal(t, "root", child.Parent())

	child.SetParent("")
	require.NoError(t, ts.Save(ctx, *child))
	child, err = ts.Get(ctx, "child")
	require.NoError(t, err)
	assert.True(t, child.IsRoot())

	list, err := ts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, ts.Delete(ctx, "root"))
	_, err = ts.Get(ctx, "root")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testBookmarksByPDF(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	bs := s.Bookmarks()

	require.NoError(t, bs.Save(ctx, domain.Bookmark{ID: "b1", PDFID: "pdf-1", Page: 9, Title: "Appendix"}))
	require.NoError(t, bs.Save(ctx, domain.Bookmark{ID: "b2", PDFID: "pdf-1", Page: 1, Title: "Intro"}))
	require.NoError(t, bs.Save(ctx, domain.Bookmark{ID: "b3", PDFID: "pdf-2", Page: 4, Title: "Other"}))

	list, err := bs.ListByPDF(ctx, "pdf-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b1", "b2"}, ids(list, func(b domain.Bookmark) string { return b.ID }))

	got, err := bs.Get(ctx, "b3")
	require.NoError(t, err)
	assert.Equal(t, "Other", got.Title)

	require.NoError(t, bs.Save(ctx, domain.Bookmark{ID: "b1", PDFID: "pdf-2", Page: 9, Title: "Moved"}))
	list, err = bs.ListByPDF(ctx, "pdf-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, bs.Delete(ctx, "b2"))
	list, err = bs.ListByPDF(ctx, "pdf-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testMeta(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	meta := s.Meta()

	_, ok, err := meta.Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, meta.Set(ctx, driven.MetaKeyLastPDF, "pdf-1"))
	require.NoError(t, meta.Set(ctx, driven.ReadingDirectionKey("pdf-1"), "rtl"))

	v, ok, err := meta.Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pdf-1", v)

	require.NoError(t, meta.Delete(ctx, driven.MetaKeyLastPDF))
	require.NoError(t, meta.Delete(ctx, driven.MetaKeyLastPDF))
	_, ok, err = meta.Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = meta.Get(ctx, "readingDirection::pdf-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rtl", v)
}

func testClearPartitions(t *testing.T, s driven.Storage) {
	ctx := context.Background()

	require.NoError(t, s.Documents().Save(ctx, domain.Document{ID: "d"}))
	require.NoError(t, s.Highlights().Save(ctx, sampleHighlight("h", "d", "t")))
	require.NoError(t, s.Topics().Save(ctx, domain.NewTopic("t", "T", "")))
	require.NoError(t, s.Bookmarks().Save(ctx, domain.Bookmark{ID: "b", PDFID: "d", Page: 1}))

	require.NoError(t, s.Documents().Clear(ctx))
	require.NoError(t, s.Highlights().Clear(ctx))
	require.NoError(t, s.Topics().Clear(ctx))
	require.NoError(t, s.Bookmarks().Clear(ctx))

	docs, err := s.Documents().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
	hs, err := s.Highlights().ListByTopic(ctx, "t")
	require.NoError(t, err)
	assert.Empty(t, hs)
	hs, err = s.Highlights().ListByPDF(ctx, "d")
	require.NoError(t, err)
	assert.Empty(t, hs)
	topics, err := s.Topics().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
	bms, err := s.Bookmarks().ListByPDF(ctx, "d")
	require.NoError(t, err)
	assert.Empty(t, bms)
}

func testTxCommit(t *testing.T, s driven.Storage) {
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Documents().Save(ctx, domain.Document{ID: "d1"}); err != nil {
			return err
		}
		if err := s.Highlights().Save(ctx, sampleHighlight("h1", "d1", "t1")); err != nil {
			return err
		}
		// Reads inside the transaction see its own writes.
		got, err := s.Highlights().ListByTopic(ctx, "t1")
		if err != nil {
			return err
		}
		assert.Len(t, got, 1)
		return s.Meta().Set(ctx, driven.MetaKeyLastPDF, "d1")
	})
	require.NoError(t, err)

	_, err = s.Documents().Get(ctx, "d1")
	assert.NoError(t, err)
	v, ok, err := s.Meta().Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "d1", v)
}

func testTxRollback(t *testing.T, s driven.Storage) {
	ctx := context.Background()
	require.NoError(t, s.Topics().Save(ctx, domain.NewTopic("keep", "Keep", "")))
	require.NoError(t, s.Highlights().Save(ctx, sampleHighlight("h0", "d0", "keep")))

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Topics().Delete(ctx, "keep"); err != nil {
			return err
		}
		if err := s.Highlights().Delete(ctx, "h0"); err != nil {
			return err
		}
		if err := s.Documents().Save(ctx, domain.Document{ID: "ghost"}); err != nil {
			return err
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	_, err = s.Topics().Get(ctx, "keep")
	assert.NoError(t, err)
	byTopic, err := s.Highlights().ListByTopic(ctx, "keep")
	require.NoError(t, err)
	assert.Len(t, byTopic, 1)
	_, err = s.Documents().Get(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testTxNested(t *testing.T, s driven.Storage) {
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Documents().Save(ctx, domain.Document{ID: "outer"}); err != nil {
			return err
		}
		if err := s.WithinTx(ctx, func(ctx context.Context) error {
			return s.Documents().Save(ctx, domain.Document{ID: "inner"})
		}); err != nil {
			return err
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	docs, err := s.Documents().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testSchemaVersion(t *testing.T, s driven.Storage) {
	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}
