// Package filesystem resolves stored document paths against the local disk.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.PathResolver = (*Resolver)(nil)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// Resolver checks that a document path names a readable PDF file.
type Resolver struct {
	root string
}

// NewResolver creates a resolver. Document paths are joined onto root;
// an empty root treats them as absolute filesystem paths.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve returns the filesystem location for a document path.
func (r *Resolver) Resolve(path string) string {
	local := filepath.FromSlash(path)
	if r.root == "" {
		return filepath.Clean(local)
	}
	return filepath.Join(r.root, local)
}

// Resolvable reports whether path exists and starts with the PDF header.
// Missing files, directories and non-PDF files are not resolvable.
func (r *Resolver) Resolvable(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	full := r.Resolve(path)
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", full, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", full, err)
	}
	if info.IsDir() {
		return false, nil
	}

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", full, err)
	}
	return bytes.Equal(header, pdfMagic), nil
}
