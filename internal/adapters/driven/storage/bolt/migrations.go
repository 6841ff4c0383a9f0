package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

var (
	bucketSchema     = []byte("schema")
	bucketDocuments  = []byte("pdfs")
	bucketMeta       = []byte("meta")
	bucketHighlights = []byte("highlights")
	bucketTopics     = []byte("topics")
	bucketBookmarks  = []byte("bookmarks")

	indexHighlightsByPDF   = []byte("idx_highlights_pdf")
	indexHighlightsByTopic = []byte("idx_highlights_topic")
	indexBookmarksByPDF    = []byte("idx_bookmarks_pdf")

	keyVersion = []byte("version")
)

// migration moves the schema from version-1 to version.
type migration struct {
	version int
	name    string
	apply   func(tx *bbolt.Tx) error
}

// migrations is the ordered, additive schema history.
var migrations = []migration{
	{1, "documents and meta", createBuckets(bucketDocuments, bucketMeta)},
	{2, "highlights", createBuckets(bucketHighlights, indexHighlightsByPDF)},
	{3, "topics", createBuckets(bucketTopics)},
	{4, "bookmarks and topic index", func(tx *bbolt.Tx) error {
		if err := createBuckets(bucketBookmarks, indexBookmarksByPDF, indexHighlightsByTopic)(tx); err != nil {
			return err
		}
		return backfillTopicIndex(tx)
	}},
}

// LatestVersion is the schema version after all migrations.
func LatestVersion() int {
	return migrations[len(migrations)-1].version
}

func createBuckets(names ...[]byte) func(tx *bbolt.Tx) error {
	return func(tx *bbolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		return nil
	}
}

// backfillTopicIndex indexes highlights written before the topic index existed.
func backfillTopicIndex(tx *bbolt.Tx) error {
	highlights := tx.Bucket(bucketHighlights)
	index := tx.Bucket(indexHighlightsByTopic)
	return highlights.ForEach(func(k, v []byte) error {
		var h domain.Highlight
		if err := json.Unmarshal(v, &h); err != nil {
			return fmt.Errorf("decoding highlight %s: %w", k, err)
		}
		for _, topicID := range h.TopicIDs {
			if err := index.Put(indexKey(topicID, h.ID), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// migrate applies pending migrations and records the new version in the
// same write transaction.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSchema); err != nil {
			return fmt.Errorf("creating schema bucket: %w", err)
		}

		current := readVersion(tx)
		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			if err := m.apply(tx); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
			current = m.version
		}

		return writeVersion(tx, current)
	})
}

func readVersion(tx *bbolt.Tx) int {
	b := tx.Bucket(bucketSchema)
	if b == nil {
		return 0
	}
	v := b.Get(keyVersion)
	if len(v) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(v))
}

func writeVersion(tx *bbolt.Tx, version int) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(version))
	return tx.Bucket(bucketSchema).Put(keyVersion, buf)
}
