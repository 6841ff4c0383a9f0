package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save inserts or replaces a document.
func (s *documentStore) Save(ctx context.Context, doc domain.Document) error {
	q, err := s.store.conn(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO pdfs (id, title, path) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, path = excluded.path
	`, doc.ID, doc.Title, doc.Path)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var doc domain.Document
	row := q.QueryRowContext(ctx, "SELECT id, title, path FROM pdfs WHERE id = ?", id)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}

// List returns all documents in id order.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, "SELECT id, title, path FROM pdfs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Path); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	return exec(ctx, s.store, "deleting document", "DELETE FROM pdfs WHERE id = ?", id)
}

// Clear removes every document.
func (s *documentStore) Clear(ctx context.Context) error {
	return exec(ctx, s.store, "clearing documents", "DELETE FROM pdfs")
}

// ==================== Highlight Store ====================

// highlightStore implements driven.HighlightStore.
// Topic membership lives in highlight_topics, ordered by position.
type highlightStore struct {
	store *Store
}

var _ driven.HighlightStore = (*highlightStore)(nil)

// Save inserts or replaces a highlight and rewrites its topic rows.
func (s *highlightStore) Save(ctx context.Context, h domain.Highlight) error {
	var tags sql.NullString
	if len(h.Tags) > 0 {
		data, err := json.Marshal(h.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}
		tags = sql.NullString{String: string(data), Valid: true}
	}

	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		q, err := s.store.conn(ctx)
		if err != nil {
			return err
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO highlights (id, pdf_id, page, box_top, box_left, box_width, box_height,
				book, volume, chapter, tags, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				pdf_id = excluded.pdf_id,
				page = excluded.page,
				box_top = excluded.box_top,
				box_left = excluded.box_left,
				box_width = excluded.box_width,
				box_height = excluded.box_height,
				book = excluded.book,
				volume = excluded.volume,
				chapter = excluded.chapter,
				tags = excluded.tags,
				description = excluded.description,
				created_at = excluded.created_at
		`, h.ID, h.PDFID, h.Page, h.Top, h.Left, h.Width, h.Height,
			h.Book, h.Volume, h.Chapter, tags, h.Description, h.CreatedAt)
		if err != nil {
			return fmt.Errorf("saving highlight: %w", err)
		}

		if _, err := q.ExecContext(ctx, "DELETE FROM highlight_topics WHERE highlight_id = ?", h.ID); err != nil {
			return fmt.Errorf("clearing highlight topics: %w", err)
		}
		for i, topicID := range h.TopicIDs {
			_, err := q.ExecContext(ctx,
				"INSERT INTO highlight_topics (highlight_id, position, topic_id) VALUES (?, ?, ?)",
				h.ID, i, topicID)
			if err != nil {
				return fmt.Errorf("saving highlight topic: %w", err)
			}
		}
		return nil
	})
}

// Get retrieves a highlight by ID.
func (s *highlightStore) Get(ctx context.Context, id string) (*domain.Highlight, error) {
	hs, err := s.query(ctx, " WHERE h.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(hs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &hs[0], nil
}

// List returns all highlights in id order.
func (s *highlightStore) List(ctx context.Context) ([]domain.Highlight, error) {
	return s.query(ctx, "")
}

// ListByPDF returns the highlights of one document.
func (s *highlightStore) ListByPDF(ctx context.Context, pdfID string) ([]domain.Highlight, error) {
	return s.query(ctx, " WHERE h.pdf_id = ?", pdfID)
}

// ListByTopic returns the highlights of one topic.
func (s *highlightStore) ListByTopic(ctx context.Context, topicID string) ([]domain.Highlight, error) {
	return s.query(ctx, " WHERE h.id IN (SELECT highlight_id FROM highlight_topics WHERE topic_id = ?)", topicID)
}

// query loads the highlights matching where, then their topic rows with
// the same filter.
func (s *highlightStore) query(ctx context.Context, where string, args ...any) ([]domain.Highlight, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT h.id, h.pdf_id, h.page, h.box_top, h.box_left, h.box_width, h.box_height,
			h.book, h.volume, h.chapter, h.tags, h.description, h.created_at
		FROM highlights h`+where+` ORDER BY h.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying highlights: %w", err)
	}

	hs := []domain.Highlight{}
	index := make(map[string]int)
	for rows.Next() {
		var h domain.Highlight
		var tags sql.NullString
		if err := rows.Scan(&h.ID, &h.PDFID, &h.Page, &h.Top, &h.Left, &h.Width, &h.Height,
			&h.Book, &h.Volume, &h.Chapter, &tags, &h.Description, &h.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning highlight: %w", err)
		}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &h.Tags); err != nil {
				rows.Close()
				return nil, fmt.Errorf("unmarshaling tags: %w", err)
			}
		}
		h.TopicIDs = []string{}
		index[h.ID] = len(hs)
		hs = append(hs, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating highlights: %w", err)
	}
	rows.Close()

	if len(hs) == 0 {
		return hs, nil
	}

	topicRows, err := q.QueryContext(ctx, `
		SELECT ht.highlight_id, ht.topic_id
		FROM highlight_topics ht JOIN highlights h ON h.id = ht.highlight_id`+where+`
		ORDER BY ht.highlight_id, ht.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying highlight topics: %w", err)
	}
	defer topicRows.Close()

	for topicRows.Next() {
		var highlightID, topicID string
		if err := topicRows.Scan(&highlightID, &topicID); err != nil {
			return nil, fmt.Errorf("scanning highlight topic: %w", err)
		}
		if i, ok := index[highlightID]; ok {
			hs[i].TopicIDs = append(hs[i].TopicIDs, topicID)
		}
	}
	if err := topicRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating highlight topics: %w", err)
	}

	return hs, nil
}

// Delete removes a highlight and its topic rows.
func (s *highlightStore) Delete(ctx context.Context, id string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := exec(ctx, s.store, "deleting highlight topics",
			"DELETE FROM highlight_topics WHERE highlight_id = ?", id); err != nil {
			return err
		}
		return exec(ctx, s.store, "deleting highlight", "DELETE FROM highlights WHERE id = ?", id)
	})
}

// Clear removes every highlight and topic row.
func (s *highlightStore) Clear(ctx context.Context) error {
	return s.store.WithinTx(ctx, func(ctx context.Context) error {
		if err := exec(ctx, s.store, "clearing highlight topics", "DELETE FROM highlight_topics"); err != nil {
			return err
		}
		return exec(ctx, s.store, "clearing highlights", "DELETE FROM highlights")
	})
}

// ==================== Topic Store ====================

// topicStore implements driven.TopicStore.
type topicStore struct {
	store *Store
}

var _ driven.TopicStore = (*topicStore)(nil)

// Save inserts or replaces a topic.
func (s *topicStore) Save(ctx context.Context, t domain.Topic) error {
	q, err := s.store.conn(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO topics (id, name, parent_id) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, parent_id = excluded.parent_id
	`, t.ID, t.Name, nullString(t.Parent()))
	if err != nil {
		return fmt.Errorf("saving topic: %w", err)
	}
	return nil
}

// Get retrieves a topic by ID.
func (s *topicStore) Get(ctx context.Context, id string) (*domain.Topic, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	var (
		t      domain.Topic
		parent sql.NullString
	)
	row := q.QueryRowContext(ctx, "SELECT id, name, parent_id FROM topics WHERE id = ?", id)
	if err := row.Scan(&t.ID, &t.Name, &parent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}
	t.SetParent(parent.String)
	return &t, nil
}

// List returns all topics in id order.
func (s *topicStore) List(ctx context.Context) ([]domain.Topic, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, "SELECT id, name, parent_id FROM topics ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var (
			t      domain.Topic
			parent sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &parent); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		t.SetParent(parent.String)
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

// Delete removes a topic.
func (s *topicStore) Delete(ctx context.Context, id string) error {
	return exec(ctx, s.store, "deleting topic", "DELETE FROM topics WHERE id = ?", id)
}

// Clear removes every topic.
func (s *topicStore) Clear(ctx context.Context) error {
	return exec(ctx, s.store, "clearing topics", "DELETE FROM topics")
}

// ==================== Bookmark Store ====================

// bookmarkStore implements driven.BookmarkStore.
type bookmarkStore struct {
	store *Store
}

var _ driven.BookmarkStore = (*bookmarkStore)(nil)

// Save inserts or replaces a bookmark.
func (s *bookmarkStore) Save(ctx context.Context, b domain.Bookmark) error {
	q, err := s.store.conn(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO bookmarks (id, pdf_id, page, title, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pdf_id = excluded.pdf_id,
			page = excluded.page,
			title = excluded.title,
			created_at = excluded.created_at
	`, b.ID, b.PDFID, b.Page, b.Title, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}
	return nil
}

// Get retrieves a bookmark by ID.
func (s *bookmarkStore) Get(ctx context.Context, id string) (*domain.Bookmark, error) {
	bs, err := s.query(ctx, " WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &bs[0], nil
}

// List returns all bookmarks in id order.
func (s *bookmarkStore) List(ctx context.Context) ([]domain.Bookmark, error) {
	return s.query(ctx, "")
}

// ListByPDF returns the bookmarks of one document.
func (s *bookmarkStore) ListByPDF(ctx context.Context, pdfID string) ([]domain.Bookmark, error) {
	return s.query(ctx, " WHERE pdf_id = ?", pdfID)
}

func (s *bookmarkStore) query(ctx context.Context, where string, args ...any) ([]domain.Bookmark, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx,
		"SELECT id, pdf_id, page, title, created_at FROM bookmarks"+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	bs := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.ID, &b.PDFID, &b.Page, &b.Title, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		bs = append(bs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return bs, nil
}

// Delete removes a bookmark.
func (s *bookmarkStore) Delete(ctx context.Context, id string) error {
	return exec(ctx, s.store, "deleting bookmark", "DELETE FROM bookmarks WHERE id = ?", id)
}

// Clear removes every bookmark.
func (s *bookmarkStore) Clear(ctx context.Context) error {
	return exec(ctx, s.store, "clearing bookmarks", "DELETE FROM bookmarks")
}

// ==================== Meta Store ====================

// metaStore implements driven.MetaStore.
type metaStore struct {
	store *Store
}

var _ driven.MetaStore = (*metaStore)(nil)

// Get returns the value for key and whether it exists.
func (s *metaStore) Get(ctx context.Context, key string) (string, bool, error) {
	q, err := s.store.conn(ctx)
	if err != nil {
		return "", false, err
	}
	var value string
	row := q.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scanning meta: %w", err)
	}
	return value, true, nil
}

// Set stores a value.
func (s *metaStore) Set(ctx context.Context, key, value string) error {
	return exec(ctx, s.store, "saving meta", `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
}

// Delete removes a key.
func (s *metaStore) Delete(ctx context.Context, key string) error {
	return exec(ctx, s.store, "deleting meta", "DELETE FROM meta WHERE key = ?", key)
}

// ==================== Helpers ====================

// exec runs a statement on the context's connection, wrapping failures
// with action.
func exec(ctx context.Context, s *Store, action, query string, args ...any) error {
	q, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// nullString converts empty strings to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
