// Package watch registers PDF files as they appear in a library folder.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

// ErrOutsideRoot is returned when a watched folder is not under the library root.
var ErrOutsideRoot = errors.New("watch: folder is outside the library root")

// Watcher turns new .pdf files under a folder into registered documents.
type Watcher struct {
	library driving.LibraryService
	root    string

	// OnRegister is called for every document registered. Optional.
	OnRegister func(domain.Document)
}

// New creates a watcher. Document paths are made relative to root, which
// must match the resolver's library root; an empty root stores absolute
// paths.
func New(library driving.LibraryService, root string) *Watcher {
	return &Watcher{library: library, root: root}
}

// DocumentPath maps a filesystem location onto the stored document path.
func (w *Watcher) DocumentPath(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	if w.root == "" {
		return filepath.ToSlash(abs), nil
	}

	root, err := filepath.Abs(w.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}
	return "/" + filepath.ToSlash(rel), nil
}

// Scan registers every PDF already under dir and returns how many
// documents it registered or found.
func (w *Watcher) Scan(ctx context.Context, dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("watch: skipping %s: %v", p, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !isPDF(p) {
			return nil
		}
		if err := w.register(ctx, p); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// Run watches dir and its subfolders until ctx is cancelled.
// Registration failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if _, err := w.DocumentPath(dir); err != nil {
		return err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := addTree(fsWatcher, dir); err != nil {
		return err
	}
	logger.Info("watch: watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fsWatcher, event)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, fsWatcher *fsnotify.Watcher, event fsnotify.Event) {
	// Renames into the folder arrive as Create.
	if !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		logger.Debug("watch: %s vanished: %v", event.Name, err)
		return
	}
	if info.IsDir() {
		if err := addTree(fsWatcher, event.Name); err != nil {
			logger.Warn("watch: %v", err)
		}
		if _, err := w.Scan(ctx, event.Name); err != nil {
			logger.Warn("watch: scanning %s: %v", event.Name, err)
		}
		return
	}
	if !isPDF(event.Name) {
		return
	}
	if err := w.register(ctx, event.Name); err != nil {
		logger.Warn("watch: %v", err)
	}
}

func (w *Watcher) register(ctx context.Context, file string) error {
	docPath, err := w.DocumentPath(file)
	if err != nil {
		return err
	}
	doc, err := w.library.Register(ctx, docPath, "")
	if err != nil {
		return fmt.Errorf("registering %s: %w", file, err)
	}
	logger.Debug("watch: %s -> %s", file, doc.ID)
	if w.OnRegister != nil {
		w.OnRegister(*doc)
	}
	return nil
}

func addTree(fsWatcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsWatcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
