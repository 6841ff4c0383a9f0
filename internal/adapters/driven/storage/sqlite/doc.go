// Package sqlite provides the alternate persistent store, backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database file holds every
// partition:
//
//   - pdfs: documents
//   - meta: singleton string values
//   - highlights: highlights, indexed by pdf_id
//   - highlight_topics: ordered topic membership, indexed by topic_id
//   - topics: the topic forest
//   - bookmarks: page bookmarks, indexed by pdf_id
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each applied version is recorded in
// schema_migrations in the same transaction as its statements.
//
// # Data Location
//
// By default, the database is stored at ~/.pdfindex/data/pdfindex.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
