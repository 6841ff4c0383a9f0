package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_Once(t *testing.T) {
	setupTestServices(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b c.pdf"), []byte("%PDF-1.7\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))
	SetServices(Services{Library: libraryService, LibraryRoot: root})

	out, err := runCmd(t, "watch", root, "--once")

	require.NoError(t, err)
	assert.Contains(t, out, "/sub/b c.pdf")
	assert.Contains(t, out, "Found 1 PDFs")

	doc, err := libraryService.FindByPath(context.Background(), "/sub/b%20c.pdf")
	require.NoError(t, err)
	assert.Equal(t, "b c.pdf", doc.Title)
}

func TestWatch_RequiresDir(t *testing.T) {
	_, err := runCmd(t, "watch")

	require.Error(t, err)
}
