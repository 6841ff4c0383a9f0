// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Storage: Versioned persistent store exposing one store per partition
//   - DocumentStore: Registered PDF documents
//   - HighlightStore: Highlights with by-document and by-topic indexes
//   - TopicStore: The topic forest
//   - BookmarkStore: Page bookmarks with a by-document index
//   - MetaStore: Singleton string values (last opened, reading direction)
//   - Transactor: Atomic multi-partition writes
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PathResolver: Checks whether a document path still resolves. Without
//     it, the last opened document is always considered resolvable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
