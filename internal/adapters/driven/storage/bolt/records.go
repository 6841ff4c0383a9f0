package bolt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

const indexSep = 0x00

// indexKey builds <value>\x00<id>.
func indexKey(value, id string) []byte {
	key := make([]byte, 0, len(value)+1+len(id))
	key = append(key, value...)
	key = append(key, indexSep)
	return append(key, id...)
}

// checkIndexable rejects values that contain the index separator, since
// they would bleed into the prefix scans of other values.
func checkIndexable(field string, values ...string) error {
	for _, v := range values {
		if strings.IndexByte(v, indexSep) >= 0 {
			return domain.NewValidationError(field, "must not contain a NUL byte")
		}
	}
	return nil
}

// indexedIDs returns the record ids stored under value in an index bucket.
func indexedIDs(index *bbolt.Bucket, value string) []string {
	prefix := append([]byte(value), indexSep)
	var result []string
	c := index.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		result = append(result, string(k[len(prefix):]))
	}
	return result
}

func putJSON(b *bbolt.Bucket, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", id, err)
	}
	return b.Put([]byte(id), data)
}

// getJSON decodes the record at id into v.
// Returns domain.ErrNotFound if the key is missing.
func getJSON(b *bbolt.Bucket, id string, v any) error {
	data := b.Get([]byte(id))
	if data == nil {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", id, err)
	}
	return nil
}

// listJSON decodes every record in key order.
func listJSON[T any](b *bbolt.Bucket) ([]T, error) {
	result := []T{}
	err := b.ForEach(func(k, v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return fmt.Errorf("decoding %s: %w", k, err)
		}
		result = append(result, item)
		return nil
	})
	return result, err
}

// listIndexed decodes the records of bucket referenced by index under value.
// Index entries whose record has vanished are skipped.
func listIndexed[T any](tx *bbolt.Tx, bucket, index []byte, value string) ([]T, error) {
	records := tx.Bucket(bucket)
	result := []T{}
	for _, id := range indexedIDs(tx.Bucket(index), value) {
		var item T
		err := getJSON(records, id, &item)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// clearBuckets empties buckets by recreating them.
func clearBuckets(tx *bbolt.Tx, names ...[]byte) error {
	for _, name := range names {
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
		if _, err := tx.CreateBucket(name); err != nil {
			return fmt.Errorf("recreating %s: %w", name, err)
		}
	}
	return nil
}
