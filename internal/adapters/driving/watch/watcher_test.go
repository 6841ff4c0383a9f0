package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/services"
)

func writePDF(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0o600))
}

func TestWatcher_DocumentPath(t *testing.T) {
	root := t.TempDir()
	w := New(nil, root)

	got, err := w.DocumentPath(filepath.Join(root, "a", "b c.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "/a/b c.pdf", got)

	_, err = w.DocumentPath(filepath.Join(filepath.Dir(root), "elsewhere.pdf"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestWatcher_DocumentPath_NoRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.pdf")

	got, err := New(nil, "").DocumentPath(file)

	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(file), got)
}

func TestWatcher_Scan(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writePDF(t, filepath.Join(root, "one.pdf"))
	writePDF(t, filepath.Join(root, "nested", "Two.PDF"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))

	library := services.NewLibraryService(memory.NewStore(), nil)
	w := New(library, root)

	count, err := w.Scan(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	docs, err := library.List(ctx)
	require.NoError(t, err)
	paths := []string{}
	for _, d := range docs {
		paths = append(paths, d.DecodedPath())
	}
	assert.ElementsMatch(t, []string{"/one.pdf", "/nested/Two.PDF"}, paths)

	// A second scan reuses the existing records.
	_, err = w.Scan(ctx, root)
	require.NoError(t, err)
	docs, err = library.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	last, err := library.GetLastOpened(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestWatcher_Run_RegistersNewPDFs(t *testing.T) {
	root := t.TempDir()
	library := services.NewLibraryService(memory.NewStore(), nil)
	w := New(library, root)

	var mu sync.Mutex
	registered := []domain.Document{}
	w.OnRegister = func(doc domain.Document) {
		mu.Lock()
		defer mu.Unlock()
		registered = append(registered, doc)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, root) }()

	// Give the watcher time to add the folder.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0o600))
	writePDF(t, filepath.Join(root, "fresh.pdf"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(registered) == 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/fresh.pdf", registered[0].Path)
	assert.Equal(t, "fresh.pdf", registered[0].Title)
}

func TestWatcher_Run_RejectsFolderOutsideRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	w := New(services.NewLibraryService(memory.NewStore(), nil), root)

	err := w.Run(context.Background(), other)

	assert.ErrorIs(t, err, ErrOutsideRoot)
}
