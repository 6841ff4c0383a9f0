package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

func seedLibrary(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	parent := "root"
	require.NoError(t, store.Documents().Save(ctx, domain.Document{ID: "local-1", Title: "One", Path: "/one.pdf"}))
	require.NoError(t, store.Documents().Save(ctx, domain.Document{ID: "local-2", Title: "Two", Path: "/two%20words.pdf"}))
	require.NoError(t, store.Topics().Save(ctx, domain.Topic{ID: "root", Name: "Root"}))
	require.NoError(t, store.Topics().Save(ctx, domain.Topic{ID: "leaf", Name: "Leaf", ParentID: &parent}))
	require.NoError(t, store.Highlights().Save(ctx, domain.Highlight{
		ID: "box-1", PDFID: "local-1", Page: 2, Top: 1.5, Left: 2, Width: 30, Height: 40,
		TopicIDs: []string{"leaf", "root"}, Book: "B", Tags: []string{"x", "y"}, CreatedAt: 42,
	}))
	require.NoError(t, store.Highlights().Save(ctx, domain.Highlight{
		ID: "box-2", PDFID: "local-2", Page: 1, Width: 10, Height: 10, TopicIDs: []string{}, CreatedAt: 43,
	}))
	require.NoError(t, store.Bookmarks().Save(ctx, domain.Bookmark{ID: "bm-1", PDFID: "local-1", Page: 7, Title: "Ch. 2", CreatedAt: 44}))
	require.NoError(t, store.Meta().Set(ctx, driven.MetaKeyLastPDF, "local-2"))
}

func TestBackupService_Export(t *testing.T) {
	store := memory.NewStore()
	seedLibrary(t, store)
	svc := NewBackupService(store)

	snapshot, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.BackupSchemaVersion, snapshot.SchemaVersion)
	assert.Len(t, snapshot.PDFs, 2)
	assert.Len(t, snapshot.Highlights, 2)
	assert.Len(t, snapshot.Topics, 2)
	assert.Len(t, snapshot.Bookmarks, 1)
	assert.Equal(t, "local-2", snapshot.LastOpened())
}

// interleavedStorage runs afterHighlights once, right after the first
// highlight listing.
type interleavedStorage struct {
	driven.Storage
	afterHighlights func()
}

func (s *interleavedStorage) Highlights() driven.HighlightStore {
	return &interleavedHighlights{HighlightStore: s.Storage.Highlights(), storage: s}
}

type interleavedHighlights struct {
	driven.HighlightStore
	storage *interleavedStorage
}

func (h *interleavedHighlights) List(ctx context.Context) ([]domain.Highlight, error) {
	result, err := h.HighlightStore.List(ctx)
	if hook := h.storage.afterHighlights; hook != nil {
		h.storage.afterHighlights = nil
		hook()
	}
	return result, err
}

func TestBackupService_Export_ConsistentWithConcurrentDelete(t *testing.T) {
	store := memory.NewStore()
	seedLibrary(t, store)
	deleted := make(chan error, 1)
	storage := &interleavedStorage{Storage: store}
	storage.afterHighlights = func() {
		go func() { deleted <- NewTopicService(store).Delete(context.Background(), "leaf") }()
		select {
		case err := <-deleted:
			deleted <- err
		case <-time.After(50 * time.Millisecond):
		}
	}

	snapshot, err := NewBackupService(storage).Export(context.Background())

	require.NoError(t, err)
	topicIDs := make(map[string]bool)
	for _, topic := range snapshot.Topics {
		topicIDs[topic.ID] = true
	}
	for _, h := range snapshot.Highlights {
		for _, id := range h.TopicIDs {
			assert.True(t, topicIDs[id], "highlight %s references topic %s missing from the snapshot", h.ID, id)
		}
	}
	require.NoError(t, <-deleted)
	_, err = store.Topics().Get(context.Background(), "leaf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBackupService_Export_Empty(t *testing.T) {
	snapshot, err := NewBackupService(memory.NewStore()).Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, snapshot.PDFs)
	assert.NotNil(t, snapshot.Highlights)
	assert.NotNil(t, snapshot.Topics)
	assert.Nil(t, snapshot.LastPDFID)
}

func TestBackupService_RoundTrip(t *testing.T) {
	for _, format := range []domain.BackupFormat{domain.BackupFormatJSON, domain.BackupFormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			source := memory.NewStore()
			seedLibrary(t, source)
			exported, err := NewBackupService(source).Export(ctx)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, NewBackupService(source).Encode(&buf, exported, format))

			target := memory.NewStore()
			targetSvc := NewBackupService(target)
			decoded, err := targetSvc.Decode(&buf, format)
			require.NoError(t, err)
			require.NoError(t, targetSvc.Import(ctx, decoded))

			reexported, err := targetSvc.Export(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(exported, reexported, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			byTopic, err := target.Highlights().ListByTopic(ctx, "leaf")
			require.NoError(t, err)
			require.Len(t, byTopic, 1)
			assert.Equal(t, "box-1", byTopic[0].ID)
		})
	}
}

func TestBackupService_Import_ReplacesEverything(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedLibrary(t, store)
	require.NoError(t, store.Meta().Set(ctx, driven.ReadingDirectionKey("local-1"), "rtl"))
	svc := NewBackupService(store)

	snapshot := &domain.Backup{
		SchemaVersion: 1,
		PDFs:          []domain.Document{{ID: "local-9", Title: "Nine", Path: "/nine.pdf"}},
	}
	snapshot.Normalise()

	require.NoError(t, svc.Import(ctx, snapshot))

	docs, err := store.Documents().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Document{{ID: "local-9", Title: "Nine", Path: "/nine.pdf"}}, docs)
	highlights, err := store.Highlights().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, highlights)
	topics, err := store.Topics().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
	bookmarks, err := store.Bookmarks().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	_, ok, err := store.Meta().Get(ctx, driven.MetaKeyLastPDF)
	require.NoError(t, err)
	assert.False(t, ok)

	dir, ok, err := store.Meta().Get(ctx, driven.ReadingDirectionKey("local-1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rtl", dir)
}

func TestBackupService_Import_EmptyParentStoredAsRoot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewBackupService(store)
	empty := ""

	require.NoError(t, svc.Import(ctx, &domain.Backup{
		SchemaVersion: domain.BackupSchemaVersion,
		Topics:        []domain.Topic{{ID: "root", Name: "Root", ParentID: &empty}},
	}))

	topic, err := store.Topics().Get(ctx, "root")
	require.NoError(t, err)
	assert.Nil(t, topic.ParentID)
	snapshot, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Topics, 1)
	assert.Nil(t, snapshot.Topics[0].ParentID)
}

func TestBackupService_Import_RejectsNewerVersion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedLibrary(t, store)
	svc := NewBackupService(store)

	err := svc.Import(ctx, &domain.Backup{SchemaVersion: domain.BackupSchemaVersion + 1})

	require.ErrorIs(t, err, domain.ErrValidation)
	docs, err := store.Documents().List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestBackupService_Import_Nil(t *testing.T) {
	err := NewBackupService(memory.NewStore()).Import(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBackupService_Decode_FillsDefaults(t *testing.T) {
	input := `{"pdfs":[{"id":"a","title":"A","path":"/a.pdf"}],"highlights":[{"id":"h","pdfId":"a","page":1}]}`

	snapshot, err := NewBackupService(memory.NewStore()).Decode(strings.NewReader(input), domain.BackupFormatJSON)

	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.SchemaVersion)
	assert.NotNil(t, snapshot.Topics)
	assert.NotNil(t, snapshot.Bookmarks)
	require.Len(t, snapshot.Highlights, 1)
	assert.Equal(t, []string{}, snapshot.Highlights[0].TopicIDs)
	assert.Empty(t, snapshot.LastOpened())
}

func TestBackupService_Decode_Errors(t *testing.T) {
	svc := NewBackupService(memory.NewStore())

	_, err := svc.Decode(strings.NewReader("{not json"), domain.BackupFormatJSON)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Decode(strings.NewReader(`{"schemaVersion": 99}`), domain.BackupFormatJSON)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Decode(strings.NewReader("{}"), "xml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestBackupService_Encode_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	snapshot := &domain.Backup{SchemaVersion: 2}
	snapshot.Normalise()

	require.NoError(t, NewBackupService(memory.NewStore()).Encode(&buf, snapshot, domain.BackupFormatJSON))

	out := buf.String()
	assert.Contains(t, out, "\n  \"schemaVersion\": 2")
	assert.Contains(t, out, `"lastPdfId": null`)
	assert.Contains(t, out, `"pdfs": []`)
}

func TestBackupService_Encode_UnsupportedFormat(t *testing.T) {
	err := NewBackupService(memory.NewStore()).Encode(&bytes.Buffer{}, &domain.Backup{}, "csv")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
