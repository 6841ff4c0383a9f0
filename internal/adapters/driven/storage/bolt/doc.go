// Package bolt provides the default persistent store, backed by a single
// bbolt file.
//
// Every partition is a bucket keyed by record id with JSON values:
//
//   - pdfs: documents
//   - meta: singleton string values
//   - highlights: highlights
//   - topics: the topic forest
//   - bookmarks: page bookmarks
//
// Secondary indexes are buckets whose keys are <indexValue>\x00<recordId>
// with empty values: idx_highlights_pdf, idx_highlights_topic and
// idx_bookmarks_pdf. Index entries are written in the same bbolt
// transaction as the record they point at.
//
// # Schema
//
// The schema version lives in the schema bucket. Opening applies every
// missing migration and records the new version in one write transaction.
// Migrations only add buckets and backfill indexes; they never drop data.
//
// # Data Location
//
// By default, the database is stored at ~/.pdfindex/data/pdfindex.bolt
package bolt
