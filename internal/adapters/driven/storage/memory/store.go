package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Storage = (*Store)(nil)

// SchemaVersion is the version reported by the in-memory store. It matches
// the latest version of the persistent backends.
const SchemaVersion = 4

type txKey struct{}

// Store is an in-memory driven.Storage.
//
// Writes are serialised through txMu. WithinTx holds txMu for the whole
// callback and restores a snapshot of every partition if the callback fails.
type Store struct {
	txMu sync.Mutex

	mu         sync.RWMutex
	closed     bool
	documents  map[string]domain.Document
	highlights map[string]domain.Highlight
	topics     map[string]domain.Topic
	bookmarks  map[string]domain.Bookmark
	meta       map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents:  make(map[string]domain.Document),
		highlights: make(map[string]domain.Highlight),
		topics:     make(map[string]domain.Topic),
		bookmarks:  make(map[string]domain.Bookmark),
		meta:       make(map[string]string),
	}
}

// Documents returns the document partition.
func (s *Store) Documents() driven.DocumentStore { return &documentStore{s: s} }

// Highlights returns the highlight partition.
func (s *Store) Highlights() driven.HighlightStore { return &highlightStore{s: s} }

// Topics returns the topic partition.
func (s *Store) Topics() driven.TopicStore { return &topicStore{s: s} }

// Bookmarks returns the bookmark partition.
func (s *Store) Bookmarks() driven.BookmarkStore { return &bookmarkStore{s: s} }

// Meta returns the singleton key-value partition.
func (s *Store) Meta() driven.MetaStore { return &metaStore{s: s} }

// SchemaVersion returns the fixed in-memory schema version.
func (s *Store) SchemaVersion(_ context.Context) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return SchemaVersion, nil
}

// Close marks the store closed. Later operations fail with
// domain.ErrStorageUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// WithinTx runs fn atomically. Calls made with a context that already
// carries a transaction join it.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := s.check(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the write locks unless ctx joins an open transaction,
// in which case txMu is already held.
func (s *Store) write(ctx context.Context, fn func()) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStorageUnavailable
	}
	fn()
	return nil
}

// read runs fn under the read lock.
func (s *Store) read(fn func()) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStorageUnavailable
	}
	fn()
	return nil
}

func (s *Store) check() error {
	return s.read(func() {})
}

type snapshot struct {
	documents  map[string]domain.Document
	highlights map[string]domain.Highlight
	topics     map[string]domain.Topic
	bookmarks  map[string]domain.Bookmark
	meta       map[string]string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		documents:  make(map[string]domain.Document, len(s.documents)),
		highlights: make(map[string]domain.Highlight, len(s.highlights)),
		topics:     make(map[string]domain.Topic, len(s.topics)),
		bookmarks:  make(map[string]domain.Bookmark, len(s.bookmarks)),
		meta:       make(map[string]string, len(s.meta)),
	}
	for k, v := range s.documents {
		snap.documents[k] = v
	}
	for k, v := range s.highlights {
		snap.highlights[k] = copyHighlight(v)
	}
	for k, v := range s.topics {
		snap.topics[k] = copyTopic(v)
	}
	for k, v := range s.bookmarks {
		snap.bookmarks[k] = v
	}
	for k, v := range s.meta {
		snap.meta[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = snap.documents
	s.highlights = snap.highlights
	s.topics = snap.topics
	s.bookmarks = snap.bookmarks
	s.meta = snap.meta
}

func copyHighlight(h domain.Highlight) domain.Highlight {
	if h.TopicIDs == nil {
		h.TopicIDs = []string{}
	} else {
		h.TopicIDs = append([]string{}, h.TopicIDs...)
	}
	if h.Tags != nil {
		h.Tags = append([]string{}, h.Tags...)
	}
	return h
}

func copyTopic(t domain.Topic) domain.Topic {
	if t.ParentID != nil {
		p := *t.ParentID
		t.ParentID = &p
	}
	return t
}

// sortedKeys returns map keys in ascending order so that List results
// follow key order like the persistent backends.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
