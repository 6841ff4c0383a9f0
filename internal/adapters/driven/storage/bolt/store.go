package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// FileName is the database file name within the data directory.
const FileName = "pdfindex.bolt"

// Ensure Store implements the interface.
var _ driven.Storage = (*Store)(nil)

type txKey struct{}

// Store is a bbolt-backed driven.Storage.
type Store struct {
	db   *bbolt.DB
	path string
}

// NewStore opens (creating if needed) the database in dataDir and applies
// pending migrations. If dataDir is empty, defaults to ~/.pdfindex/data.
// Failures are reported as domain.ErrStorageUnavailable.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: getting home directory: %w", domain.ErrStorageUnavailable, err)
		}
		dataDir = filepath.Join(home, ".pdfindex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStorageUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, FileName)
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStorageUnavailable, err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStorageUnavailable, err)
	}

	return s, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Documents returns the document partition.
func (s *Store) Documents() driven.DocumentStore {
	return &documentStore{store: s}
}

// Highlights returns the highlight partition.
func (s *Store) Highlights() driven.HighlightStore {
	return &highlightStore{store: s}
}

// Topics returns the topic partition.
func (s *Store) Topics() driven.TopicStore {
	return &topicStore{store: s}
}

// Bookmarks returns the bookmark partition.
func (s *Store) Bookmarks() driven.BookmarkStore {
	return &bookmarkStore{store: s}
}

// Meta returns the singleton key-value partition.
func (s *Store) Meta() driven.MetaStore {
	return &metaStore{store: s}
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.view(ctx, func(tx *bbolt.Tx) error {
		version = readVersion(tx)
		return nil
	})
	return version, err
}

// WithinTx runs fn inside one bbolt write transaction.
// A context that already carries a transaction is reused.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return unavailable(err)
}

func txFrom(ctx context.Context) (*bbolt.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*bbolt.Tx)
	return tx, ok
}

// update runs fn in the context's transaction, or in a new write transaction.
func (s *Store) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if tx, ok := txFrom(ctx); ok {
		return fn(tx)
	}
	return unavailable(s.db.Update(fn))
}

// view runs fn in the context's transaction, or in a new read transaction.
func (s *Store) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if tx, ok := txFrom(ctx); ok {
		return fn(tx)
	}
	return unavailable(s.db.View(fn))
}

// unavailable maps a closed database onto domain.ErrStorageUnavailable.
func unavailable(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return err
}
