package bolt

import (
	"context"
	"errors"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// ==================== Document Store ====================

type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save inserts or replaces a document.
func (s *documentStore) Save(ctx context.Context, doc domain.Document) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(bucketDocuments), doc.ID, doc)
	})
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketDocuments), id, &doc)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns all documents in id order.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		docs, err = listJSON[domain.Document](tx.Bucket(bucketDocuments))
		return err
	})
	return docs, err
}

// Delete removes a document.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(id))
	})
}

// Clear removes every document.
func (s *documentStore) Clear(ctx context.Context) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return clearBuckets(tx, bucketDocuments)
	})
}

// ==================== Highlight Store ====================

type highlightStore struct {
	store *Store
}

var _ driven.HighlightStore = (*highlightStore)(nil)

// Save inserts or replaces a highlight and moves its index entries.
func (s *highlightStore) Save(ctx context.Context, h domain.Highlight) error {
	if h.TopicIDs == nil {
		h.TopicIDs = []string{}
	}
	if err := checkIndexable("id", h.ID); err != nil {
		return err
	}
	if err := checkIndexable("pdfId", h.PDFID); err != nil {
		return err
	}
	if err := checkIndexable("topicIds", h.TopicIDs...); err != nil {
		return err
	}
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindexHighlight(tx, h.ID); err != nil {
			return err
		}
		if err := putJSON(tx.Bucket(bucketHighlights), h.ID, h); err != nil {
			return err
		}
		if err := tx.Bucket(indexHighlightsByPDF).Put(indexKey(h.PDFID, h.ID), nil); err != nil {
			return err
		}
		byTopic := tx.Bucket(indexHighlightsByTopic)
		for _, topicID := range h.TopicIDs {
			if err := byTopic.Put(indexKey(topicID, h.ID), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// unindexHighlight drops the index entries of the stored version of id.
func unindexHighlight(tx *bbolt.Tx, id string) error {
	var old domain.Highlight
	err := getJSON(tx.Bucket(bucketHighlights), id, &old)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Bucket(indexHighlightsByPDF).Delete(indexKey(old.PDFID, id)); err != nil {
		return err
	}
	byTopic := tx.Bucket(indexHighlightsByTopic)
	for _, topicID := range old.TopicIDs {
		if err := byTopic.Delete(indexKey(topicID, id)); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a highlight by ID.
func (s *highlightStore) Get(ctx context.Context, id string) (*domain.Highlight, error) {
	var h domain.Highlight
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketHighlights), id, &h)
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns all highlights in id order.
func (s *highlightStore) List(ctx context.Context) ([]domain.Highlight, error) {
	var hs []domain.Highlight
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		hs, err = listJSON[domain.Highlight](tx.Bucket(bucketHighlights))
		return err
	})
	return hs, err
}

// ListByPDF returns the highlights of one document via idx_highlights_pdf.
func (s *highlightStore) ListByPDF(ctx context.Context, pdfID string) ([]domain.Highlight, error) {
	var hs []domain.Highlight
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		hs, err = listIndexed[domain.Highlight](tx, bucketHighlights, indexHighlightsByPDF, pdfID)
		return err
	})
	return hs, err
}

// ListByTopic returns the highlights of one topic via idx_highlights_topic.
func (s *highlightStore) ListByTopic(ctx context.Context, topicID string) ([]domain.Highlight, error) {
	var hs []domain.Highlight
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		hs, err = listIndexed[domain.Highlight](tx, bucketHighlights, indexHighlightsByTopic, topicID)
		return err
	})
	return hs, err
}

// Delete removes a highlight and its index entries.
func (s *highlightStore) Delete(ctx context.Context, id string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindexHighlight(tx, id); err != nil {
			return err
		}
		return tx.Bucket(bucketHighlights).Delete([]byte(id))
	})
}

// Clear removes every highlight and both highlight indexes.
func (s *highlightStore) Clear(ctx context.Context) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return clearBuckets(tx, bucketHighlights, indexHighlightsByPDF, indexHighlightsByTopic)
	})
}

// ==================== Topic Store ====================

type topicStore struct {
	store *Store
}

var _ driven.TopicStore = (*topicStore)(nil)

// Save inserts or replaces a topic.
func (s *topicStore) Save(ctx context.Context, t domain.Topic) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket(bucketTopics), t.ID, t)
	})
}

// Get retrieves a topic by ID.
func (s *topicStore) Get(ctx context.Context, id string) (*domain.Topic, error) {
	var t domain.Topic
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketTopics), id, &t)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all topics in id order.
func (s *topicStore) List(ctx context.Context) ([]domain.Topic, error) {
	var topics []domain.Topic
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		topics, err = listJSON[domain.Topic](tx.Bucket(bucketTopics))
		return err
	})
	return topics, err
}

// Delete removes a topic.
func (s *topicStore) Delete(ctx context.Context, id string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTopics).Delete([]byte(id))
	})
}

// Clear removes every topic.
func (s *topicStore) Clear(ctx context.Context) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return clearBuckets(tx, bucketTopics)
	})
}

// ==================== Bookmark Store ====================

type bookmarkStore struct {
	store *Store
}

var _ driven.BookmarkStore = (*bookmarkStore)(nil)

// Save inserts or replaces a bookmark and moves its index entry.
func (s *bookmarkStore) Save(ctx context.Context, b domain.Bookmark) error {
	if err := checkIndexable("id", b.ID); err != nil {
		return err
	}
	if err := checkIndexable("pdfId", b.PDFID); err != nil {
		return err
	}
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindexBookmark(tx, b.ID); err != nil {
			return err
		}
		if err := putJSON(tx.Bucket(bucketBookmarks), b.ID, b); err != nil {
			return err
		}
		return tx.Bucket(indexBookmarksByPDF).Put(indexKey(b.PDFID, b.ID), nil)
	})
}

func unindexBookmark(tx *bbolt.Tx, id string) error {
	var old domain.Bookmark
	err := getJSON(tx.Bucket(bucketBookmarks), id, &old)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Bucket(indexBookmarksByPDF).Delete(indexKey(old.PDFID, id))
}

// Get retrieves a bookmark by ID.
func (s *bookmarkStore) Get(ctx context.Context, id string) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketBookmarks), id, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all bookmarks in id order.
func (s *bookmarkStore) List(ctx context.Context) ([]domain.Bookmark, error) {
	var bs []domain.Bookmark
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		bs, err = listJSON[domain.Bookmark](tx.Bucket(bucketBookmarks))
		return err
	})
	return bs, err
}

// ListByPDF returns the bookmarks of one document via idx_bookmarks_pdf.
func (s *bookmarkStore) ListByPDF(ctx context.Context, pdfID string) ([]domain.Bookmark, error) {
	var bs []domain.Bookmark
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		bs, err = listIndexed[domain.Bookmark](tx, bucketBookmarks, indexBookmarksByPDF, pdfID)
		return err
	})
	return bs, err
}

// Delete removes a bookmark and its index entry.
func (s *bookmarkStore) Delete(ctx context.Context, id string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindexBookmark(tx, id); err != nil {
			return err
		}
		return tx.Bucket(bucketBookmarks).Delete([]byte(id))
	})
}

// Clear removes every bookmark and the bookmark index.
func (s *bookmarkStore) Clear(ctx context.Context) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return clearBuckets(tx, bucketBookmarks, indexBookmarksByPDF)
	})
}

// ==================== Meta Store ====================

type metaStore struct {
	store *Store
}

var _ driven.MetaStore = (*metaStore)(nil)

// Get returns the value for key and whether it exists.
func (s *metaStore) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.store.view(ctx, func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get([]byte(key)); v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

// Set stores a value.
func (s *metaStore) Set(ctx context.Context, key, value string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put([]byte(key), []byte(value))
	})
}

// Delete removes a key.
func (s *metaStore) Delete(ctx context.Context, key string) error {
	return s.store.update(ctx, func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Delete([]byte(key))
	})
}
