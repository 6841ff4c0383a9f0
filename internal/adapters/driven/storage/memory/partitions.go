package memory

import (
	"context"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driven"
)

var (
	_ driven.DocumentStore  = (*documentStore)(nil)
	_ driven.HighlightStore = (*highlightStore)(nil)
	_ driven.TopicStore     = (*topicStore)(nil)
	_ driven.BookmarkStore  = (*bookmarkStore)(nil)
	_ driven.MetaStore      = (*metaStore)(nil)
)

type documentStore struct{ s *Store }

func (d *documentStore) Save(ctx context.Context, doc domain.Document) error {
	return d.s.write(ctx, func() { d.s.documents[doc.ID] = doc })
}

func (d *documentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	var (
		doc domain.Document
		ok  bool
	)
	if err := d.s.read(func() { doc, ok = d.s.documents[id] }); err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (d *documentStore) List(_ context.Context) ([]domain.Document, error) {
	result := []domain.Document{}
	err := d.s.read(func() {
		for _, id := range sortedKeys(d.s.documents) {
			result = append(result, d.s.documents[id])
		}
	})
	return result, err
}

func (d *documentStore) Delete(ctx context.Context, id string) error {
	return d.s.write(ctx, func() { delete(d.s.documents, id) })
}

func (d *documentStore) Clear(ctx context.Context) error {
	return d.s.write(ctx, func() { d.s.documents = make(map[string]domain.Document) })
}

type highlightStore struct{ s *Store }

func (h *highlightStore) Save(ctx context.Context, hl domain.Highlight) error {
	return h.s.write(ctx, func() { h.s.highlights[hl.ID] = copyHighlight(hl) })
}

func (h *highlightStore) Get(_ context.Context, id string) (*domain.Highlight, error) {
	var (
		hl domain.Highlight
		ok bool
	)
	if err := h.s.read(func() { hl, ok = h.s.highlights[id] }); err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	hl = copyHighlight(hl)
	return &hl, nil
}

func (h *highlightStore) List(_ context.Context) ([]domain.Highlight, error) {
	return h.filter(func(domain.Highlight) bool { return true })
}

func (h *highlightStore) ListByPDF(_ context.Context, pdfID string) ([]domain.Highlight, error) {
	return h.filter(func(hl domain.Highlight) bool { return hl.PDFID == pdfID })
}

func (h *highlightStore) ListByTopic(_ context.Context, topicID string) ([]domain.Highlight, error) {
	return h.filter(func(hl domain.Highlight) bool { return hl.HasTopic(topicID) })
}

func (h *highlightStore) filter(keep func(domain.Highlight) bool) ([]domain.Highlight, error) {
	result := []domain.Highlight{}
	err := h.s.read(func() {
		for _, id := range sortedKeys(h.s.highlights) {
			if hl := h.s.highlights[id]; keep(hl) {
				result = append(result, copyHighlight(hl))
			}
		}
	})
	return result, err
}

func (h *highlightStore) Delete(ctx context.Context, id string) error {
	return h.s.write(ctx, func() { delete(h.s.highlights, id) })
}

func (h *highlightStore) Clear(ctx context.Context) error {
	return h.s.write(ctx, func() { h.s.highlights = make(map[string]domain.Highlight) })
}

type topicStore struct{ s *Store }

func (t *topicStore) Save(ctx context.Context, topic domain.Topic) error {
	return t.s.write(ctx, func() { t.s.topics[topic.ID] = copyTopic(topic) })
}

func (t *topicStore) Get(_ context.Context, id string) (*domain.Topic, error) {
	var (
		topic domain.Topic
		ok    bool
	)
	if err := t.s.read(func() { topic, ok = t.s.topics[id] }); err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	topic = copyTopic(topic)
	return &topic, nil
}

func (t *topicStore) List(_ context.Context) ([]domain.Topic, error) {
	result := []domain.Topic{}
	err := t.s.read(func() {
		for _, id := range sortedKeys(t.s.topics) {
			result = append(result, copyTopic(t.s.topics[id]))
		}
	})
	return result, err
}

func (t *topicStore) Delete(ctx context.Context, id string) error {
	return t.s.write(ctx, func() { delete(t.s.topics, id) })
}

func (t *topicStore) Clear(ctx context.Context) error {
	return t.s.write(ctx, func() { t.s.topics = make(map[string]domain.Topic) })
}

type bookmarkStore struct{ s *Store }

func (b *bookmarkStore) Save(ctx context.Context, bm domain.Bookmark) error {
	return b.s.write(ctx, func() { b.s.bookmarks[bm.ID] = bm })
}

func (b *bookmarkStore) Get(_ context.Context, id string) (*domain.Bookmark, error) {
	var (
		bm domain.Bookmark
		ok bool
	)
	if err := b.s.read(func() { bm, ok = b.s.bookmarks[id] }); err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &bm, nil
}

func (b *bookmarkStore) List(_ context.Context) ([]domain.Bookmark, error) {
	return b.filter(func(domain.Bookmark) bool { return true })
}

func (b *bookmarkStore) ListByPDF(_ context.Context, pdfID string) ([]domain.Bookmark, error) {
	return b.filter(func(bm domain.Bookmark) bool { return bm.PDFID == pdfID })
}

func (b *bookmarkStore) filter(keep func(domain.Bookmark) bool) ([]domain.Bookmark, error) {
	result := []domain.Bookmark{}
	err := b.s.read(func() {
		for _, id := range sortedKeys(b.s.bookmarks) {
			if bm := b.s.bookmarks[id]; keep(bm) {
				result = append(result, bm)
			}
		}
	})
	return result, err
}

func (b *bookmarkStore) Delete(ctx context.Context, id string) error {
	return b.s.write(ctx, func() { delete(b.s.bookmarks, id) })
}

func (b *bookmarkStore) Clear(ctx context.Context) error {
	return b.s.write(ctx, func() { b.s.bookmarks = make(map[string]domain.Bookmark) })
}

type metaStore struct{ s *Store }

func (m *metaStore) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := m.s.read(func() { value, ok = m.s.meta[key] })
	return value, ok, err
}

func (m *metaStore) Set(ctx context.Context, key, value string) error {
	return m.s.write(ctx, func() { m.s.meta[key] = value })
}

func (m *metaStore) Delete(ctx context.Context, key string) error {
	return m.s.write(ctx, func() { delete(m.s.meta, key) })
}
