package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolver_Resolvable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "books/good.pdf", "%PDF-1.7\n...")
	writeFile(t, root, "books/with space.pdf", "%PDF-1.4")
	writeFile(t, root, "books/fake.pdf", "<html>")
	writeFile(t, root, "books/short.pdf", "%P")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "books/dir.pdf"), 0o755))

	tests := []struct {
		path string
		want bool
	}{
		{"/books/good.pdf", true},
		{"/books/with space.pdf", true},
		{"/books/fake.pdf", false},
		{"/books/short.pdf", false},
		{"/books/missing.pdf", false},
		{"/books/dir.pdf", false},
	}

	r := NewResolver(root)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := r.Resolvable(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_NoRootUsesAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.pdf", "%PDF-2.0")

	ok, err := NewResolver("").Resolvable(context.Background(), filepath.ToSlash(path))

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolver_Resolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv", "a", "b.pdf"), NewResolver("/srv").Resolve("/a/b.pdf"))
	assert.Equal(t, filepath.Clean("/a/b.pdf"), NewResolver("").Resolve("/a/b.pdf"))
}

func TestResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(t.TempDir()).Resolvable(ctx, "/a.pdf")

	assert.ErrorIs(t, err, context.Canceled)
}
